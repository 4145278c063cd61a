package dtos

import (
	"strings"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

// ProfileUpdateRequest is the self-service form. Email is not part of it.
// Only shape is checked: a province must be a known key and a birth date must parse. Empty optional
// values are stored as NULL.
type ProfileUpdateRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	DNINIE           string `json:"dni_nie"`
	BirthDate        string `json:"birth_date" validate:"omitempty,date"`
	Address          string `json:"address"`
	Province         string `json:"province" validate:"omitempty,province"`
	Phone            string `json:"phone"`
	PaymentMethod    string `json:"payment_method"`
	CollectionMethod string `json:"collection_method"`
}

func (r *ProfileUpdateRequest) Validate() error {
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Province = strings.TrimSpace(r.Province)
	return validateStruct(r)
}

// Fields returns every editable column.
func (r *ProfileUpdateRequest) Fields() map[string]any {
	return map[string]any{
		"first_name":        strings.TrimSpace(r.FirstName),
		"last_name":         strings.TrimSpace(r.LastName),
		"dni_nie":           optional(r.DNINIE),
		"birth_date":        parseDate(strings.TrimSpace(r.BirthDate)),
		"address":           optional(r.Address),
		"province":          optionalProvince(r.Province),
		"phone":             optional(r.Phone),
		"payment_method":    optional(r.PaymentMethod),
		"collection_method": optional(r.CollectionMethod),
	}
}

// UserEditRequest is the admin edit form; unlike the self-service form it carries email and status.
type UserEditRequest struct {
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	DNINIE           string `json:"dni_nie"`
	BirthDate        string `json:"birth_date" validate:"omitempty,date"`
	Address          string `json:"address"`
	Province         string `json:"province" validate:"omitempty,province"`
	Phone            string `json:"phone"`
	AccountStatus    string `json:"account_status" validate:"required,account_status"`
	PaymentMethod    string `json:"payment_method"`
	CollectionMethod string `json:"collection_method"`
}

func NewUserEditRequest(p *models.Profile) UserEditRequest {
	req := UserEditRequest{
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Email:            p.Email,
		DNINIE:           deref(p.DNINIE),
		Address:          deref(p.Address),
		Phone:            deref(p.Phone),
		AccountStatus:    string(p.AccountStatus),
		PaymentMethod:    deref(p.PaymentMethod),
		CollectionMethod: deref(p.CollectionMethod),
	}
	if p.Province != nil {
		req.Province = string(*p.Province)
	}
	if p.BirthDate != nil {
		req.BirthDate = p.BirthDate.Format(DateLayout)
	}
	return req
}

func (r *UserEditRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Province = strings.TrimSpace(r.Province)
	if r.AccountStatus == "" {
		r.AccountStatus = string(models.AccountActive)
	}
	return validateStruct(r)
}

func (r *UserEditRequest) Fields() map[string]any {
	return map[string]any{
		"first_name":        r.FirstName,
		"last_name":         r.LastName,
		"email":             r.Email,
		"dni_nie":           optional(r.DNINIE),
		"birth_date":        parseDate(r.BirthDate),
		"address":           optional(r.Address),
		"province":          optionalProvince(r.Province),
		"phone":             optional(r.Phone),
		"account_status":    models.AccountStatus(r.AccountStatus),
		"payment_method":    optional(r.PaymentMethod),
		"collection_method": optional(r.CollectionMethod),
	}
}

func optionalProvince(s string) *models.Province {
	p := models.Province(strings.TrimSpace(s))
	if !p.Valid() {
		return nil
	}
	return &p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
