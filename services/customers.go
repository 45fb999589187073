package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"CRMBackend/database"
	"CRMBackend/errorhandler"
	"CRMBackend/models"
	"CRMBackend/utils"
)

type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

type CustomerFilter struct {
	Name         string
	Email        string
	PhonePattern string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
}

// CreateCustomer validates and stores a single customer.
func CreateCustomer(input CustomerInput) (*models.Customer, error) {
	var customer *models.Customer
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		customer, err = createCustomer(tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// BulkCreateCustomers creates customers row by row inside one transaction.
// Each row gets its own savepoint, so a bad row is rolled back alone while
// the rest of the batch still commits. Row failures come back as
// "Row <idx>: <message>" strings, mirroring the API contract.
func BulkCreateCustomers(inputs []CustomerInput) ([]models.Customer, []string, error) {
	if len(inputs) == 0 {
		return []models.Customer{}, []string{"Input list cannot be empty."}, nil
	}

	created := make([]models.Customer, 0, len(inputs))
	var rowErrors []string

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for idx, input := range inputs {
			rowErr := tx.Transaction(func(row *gorm.DB) error {
				customer, err := createCustomer(row, input)
				if err != nil {
					return err
				}
				created = append(created, *customer)
				return nil
			})
			if rowErr != nil {
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", idx, rowMessage(rowErr)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, errorhandler.NewDatabaseError(err, "bulk customer create")
	}

	return created, rowErrors, nil
}

func rowMessage(err error) string {
	var customErr *errorhandler.CustomError
	if errors.As(err, &customErr) {
		switch customErr.Category {
		case errorhandler.ValidationError, errorhandler.DuplicateError:
			return customErr.UserMessage
		}
	}
	return "Unexpected error."
}

func createCustomer(tx *gorm.DB, input CustomerInput) (*models.Customer, error) {
	name := utils.SanitizeInput(input.Name)
	email := utils.SanitizeInput(input.Email)
	phone := utils.SanitizeInput(input.Phone)

	if name == "" {
		return nil, errorhandler.NewValidationError("Name is required.")
	}
	if email == "" {
		return nil, errorhandler.NewValidationError("Email is required.")
	}
	if !utils.IsValidEmail(email) {
		return nil, errorhandler.NewValidationError("Invalid email format.")
	}
	if !utils.IsValidPhone(phone) {
		return nil, errorhandler.NewValidationError("Invalid phone format. Use +1234567890 or 123-456-7890.")
	}

	var count int64
	if err := tx.Model(&models.Customer{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return nil, errorhandler.NewDatabaseError(err, "customer email lookup")
	}
	if count > 0 {
		return nil, errorhandler.NewDuplicateError("Email already exists.")
	}

	customer := &models.Customer{Name: name, Email: email, Phone: phone}
	if err := tx.Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a uniqueness race to a concurrent insert.
			return nil, errorhandler.NewDuplicateError("Email already exists.")
		}
		return nil, errorhandler.NewDatabaseError(err, "customer create")
	}

	return customer, nil
}

// ListCustomers returns customers matching the filter, oldest first.
func ListCustomers(filter CustomerFilter) ([]models.Customer, error) {
	query := database.DB.Model(&models.Customer{})

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Email != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(filter.Email)+"%")
	}
	if filter.PhonePattern != "" {
		query = query.Where("phone LIKE ?", filter.PhonePattern+"%")
	}
	if filter.CreatedAtGte != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAtGte)
	}
	if filter.CreatedAtLte != nil {
		query = query.Where("created_at <= ?", *filter.CreatedAtLte)
	}

	var customers []models.Customer
	if err := query.Order("id").Find(&customers).Error; err != nil {
		return nil, errorhandler.NewDatabaseError(err, "customer list")
	}
	return customers, nil
}
