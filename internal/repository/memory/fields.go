package memory

import (
	"fmt"
	"time"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

// Column maps arrive the same way gorm receives them: typed values, nil or typed-nil pointers for NULL.

func setJobField(j *models.Job, column string, v any) error {
	var err error
	switch column {
	case "title":
		j.Title, err = asString(column, v)
	case "description":
		j.Description, err = asString(column, v)
	case "category":
		var s string
		s, err = asString(column, v)
		j.Category = models.JobCategory(s)
	case "province":
		var s string
		s, err = asString(column, v)
		j.Province = models.Province(s)
	case "status":
		var s string
		s, err = asString(column, v)
		j.Status = models.JobStatus(s)
	case "budget":
		j.Budget, err = asFloat(column, v)
	case "estimated_date":
		j.EstimatedDate, err = asTime(column, v)
	case "assigned_to":
		j.AssignedTo, err = asStringPtr(column, v)
	case "publisher_id", "id", "created_at":
		// immutable
	default:
		err = fmt.Errorf("unknown jobs column %q", column)
	}
	return err
}

func setProfileField(p *models.Profile, column string, v any) error {
	var err error
	switch column {
	case "first_name":
		p.FirstName, err = asString(column, v)
	case "last_name":
		p.LastName, err = asString(column, v)
	case "email":
		p.Email, err = asString(column, v)
	case "phone":
		p.Phone, err = asStringPtr(column, v)
	case "dni_nie":
		p.DNINIE, err = asStringPtr(column, v)
	case "address":
		p.Address, err = asStringPtr(column, v)
	case "payment_method":
		p.PaymentMethod, err = asStringPtr(column, v)
	case "collection_method":
		p.CollectionMethod, err = asStringPtr(column, v)
	case "birth_date":
		p.BirthDate, err = asTime(column, v)
	case "province":
		var s *string
		s, err = asStringPtr(column, v)
		if s == nil {
			p.Province = nil
		} else {
			prov := models.Province(*s)
			p.Province = &prov
		}
	case "account_status":
		var s string
		s, err = asString(column, v)
		p.AccountStatus = models.AccountStatus(s)
	case "user_id", "id", "created_at":
		// immutable
	default:
		err = fmt.Errorf("unknown profiles column %q", column)
	}
	return err
}

func asString(column string, v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case models.JobCategory:
		return string(x), nil
	case models.Province:
		return string(x), nil
	case models.JobStatus:
		return string(x), nil
	case models.AccountStatus:
		return string(x), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return "", fmt.Errorf("column %s: unexpected %T", column, v)
}

func asStringPtr(column string, v any) (*string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *string:
		if x == nil {
			return nil, nil
		}
		s := *x
		return &s, nil
	case *models.Province:
		if x == nil {
			return nil, nil
		}
		s := string(*x)
		return &s, nil
	}
	s, err := asString(column, v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func asFloat(column string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("column %s: unexpected %T", column, v)
}

func asTime(column string, v any) (*time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		t := *x
		return &t, nil
	case time.Time:
		return &x, nil
	}
	return nil, fmt.Errorf("column %s: unexpected %T", column, v)
}
