package service

import (
	"github.com/blindhunter/blindhunter/database"
	"github.com/blindhunter/blindhunter/database/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewService provides CRUD over reviews. The submitter is always passed
// in by the caller from the session; it is never read from form input.
type ReviewService struct{}

// GetReviews returns all reviews, newest date first, with their company loaded.
func (s *ReviewService) GetReviews() ([]*model.Review, error) {
	db := database.GetDB()
	var reviews []*model.Review
	err := db.Model(model.Review{}).
		Preload("Company").
		Order("date DESC").
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) GetReview(id int) (*model.Review, error) {
	return getReview(database.GetDB(), id)
}

func getReview(tx *gorm.DB, id int) (*model.Review, error) {
	review := &model.Review{}
	err := tx.Model(model.Review{}).Where("id = ?", id).First(review).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return review, nil
}

// AddReview stores review under the submitter's username.
func (s *ReviewService) AddReview(submitter string, review *model.Review) error {
	review.Id = 0
	review.ReviewName = submitter
	review.Company = nil
	return database.GetDB().Omit(clause.Associations).Create(review).Error
}

// UpdateReview overwrites every field of review id with data and re-stamps
// the submitter.
func (s *ReviewService) UpdateReview(id int, submitter string, data *model.Review) (*model.Review, error) {
	var review *model.Review
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var err error
		review, err = getReview(tx, id)
		if err != nil {
			return err
		}
		review.ReviewName = submitter
		review.CompanyId = data.CompanyId
		review.Date = data.Date
		review.Description = data.Description
		return tx.Omit(clause.Associations).Save(review).Error
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DelReview(id int) error {
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		if _, err := getReview(tx, id); err != nil {
			return err
		}
		return tx.Delete(&model.Review{}, id).Error
	})
}
