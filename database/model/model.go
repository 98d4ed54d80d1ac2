// Package model defines the GORM-backed records of blindhunter.
package model

// User is a registered account. Password holds the bcrypt hash.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" form:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" form:"password" gorm:"not null"`
}

type Company struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	CompanyName string `json:"companyName" form:"company_name" gorm:"column:company_name;not null"`
	Location    string `json:"location" form:"location"`
	Area        string `json:"area" form:"area"`
	Email       string `json:"email" form:"email" gorm:"uniqueIndex"`
	Phone       string `json:"phone" form:"phone" gorm:"uniqueIndex"`
}

// Review is a user-submitted review of a company; deleting the company
// deletes its reviews. ReviewName is the submitter's username copied from
// the session, not a reference to users.
type Review struct {
	Id          int      `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewName  string   `json:"reviewName" form:"review_name" gorm:"column:review_name;not null"`
	CompanyId   int      `json:"companyId" form:"company_id" gorm:"index;not null"`
	Date        string   `json:"date" form:"date" gorm:"index"`
	Description string   `json:"description" form:"description"`
	Company     *Company `json:"company,omitempty" gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE" form:"-"`
}

// Setting is a key/value row for application state such as the session secret.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex"`
	Value string `json:"value"`
}
