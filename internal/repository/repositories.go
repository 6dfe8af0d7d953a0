package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Beneficiary  BeneficiaryRepository
	Application  ApplicationRepository
	Document     DocumentRepository
	Audit        AuditRepository
	Notification NotificationRepository
	RefreshToken RefreshTokenRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Beneficiary:  NewBeneficiaryRepository(db),
		Application:  NewApplicationRepository(db),
		Document:     NewDocumentRepository(db),
		Audit:        NewAuditRepository(db),
		Notification: NewNotificationRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
	}
}

// ListQuery carries pagination, search and filter params for list endpoints
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

func (q *ListQuery) offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = 20
	}
	return (page - 1) * perPage
}

// limit returns the page size; a negative PerPage disables pagination
func (q *ListQuery) limit() int {
	if q.PerPage < 0 {
		return -1
	}
	if q.PerPage == 0 {
		return 20
	}
	return q.PerPage
}
