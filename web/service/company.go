package service

import (
	"github.com/blindhunter/blindhunter/database"
	"github.com/blindhunter/blindhunter/database/model"

	"gorm.io/gorm"
)

// CompanyService provides CRUD over companies. Email and phone are unique;
// violations surface as ErrDuplicateCompany with nothing written.
type CompanyService struct{}

// GetCompanies returns all companies ordered by name.
func (s *CompanyService) GetCompanies() ([]*model.Company, error) {
	db := database.GetDB()
	var companies []*model.Company
	err := db.Model(model.Company{}).Order("company_name").Order("id").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *CompanyService) GetCompany(id int) (*model.Company, error) {
	return getCompany(database.GetDB(), id)
}

func getCompany(tx *gorm.DB, id int) (*model.Company, error) {
	company := &model.Company{}
	err := tx.Model(model.Company{}).Where("id = ?", id).First(company).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) AddCompany(company *model.Company) error {
	company.Id = 0
	err := database.GetDB().Create(company).Error
	if database.IsDuplicatedKey(err) {
		return ErrDuplicateCompany
	}
	return err
}

// UpdateCompany overwrites every field of company id with data.
func (s *CompanyService) UpdateCompany(id int, data *model.Company) (*model.Company, error) {
	var company *model.Company
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var err error
		company, err = getCompany(tx, id)
		if err != nil {
			return err
		}
		company.CompanyName = data.CompanyName
		company.Location = data.Location
		company.Area = data.Area
		company.Email = data.Email
		company.Phone = data.Phone
		return tx.Save(company).Error
	})
	if database.IsDuplicatedKey(err) {
		return nil, ErrDuplicateCompany
	} else if err != nil {
		return nil, err
	}
	return company, nil
}

// DelCompany deletes company id together with its reviews.
func (s *CompanyService) DelCompany(id int) error {
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		if _, err := getCompany(tx, id); err != nil {
			return err
		}
		return tx.Delete(&model.Company{}, id).Error
	})
}
