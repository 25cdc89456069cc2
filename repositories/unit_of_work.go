package repositories

import "gorm.io/gorm"

type gormUnitOfWork struct {
	surveys   SurveyRepository
	responses ResponseRepository
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{
		surveys:   NewSurveyRepository(db),
		responses: NewResponseRepository(db),
	}
}

func (u *gormUnitOfWork) Surveys() SurveyRepository     { return u.surveys }
func (u *gormUnitOfWork) Responses() ResponseRepository { return u.responses }
