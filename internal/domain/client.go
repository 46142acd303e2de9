package domain

import (
	"strings"
	"time"
)

type Client struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Company   string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientSnapshot is the copy of a client stored on a quotation. Later edits
// to the client record do not reach existing quotations.
type ClientSnapshot struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Company string
	Address string
}

func (c *Client) Snapshot() ClientSnapshot {
	return ClientSnapshot{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Address: c.Address,
	}
}

// Validate checks the fields a quotation cannot be submitted without.
func (c *Client) Validate() error {
	v := &ValidationError{}
	validateContact(v, "client", c.Name, c.Email)
	return v.OrNil()
}

// Matches reports whether term appears in name, email or company,
// ignoring case.
func (c *Client) Matches(term string) bool {
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), t) ||
		strings.Contains(strings.ToLower(c.Email), t) ||
		strings.Contains(strings.ToLower(c.Company), t)
}

func validateContact(v *ValidationError, prefix, name, email string) {
	if strings.TrimSpace(name) == "" {
		v.Add("%s.name is required", prefix)
	}
	if strings.TrimSpace(email) == "" {
		v.Add("%s.email is required", prefix)
	} else if !strings.Contains(email, "@") {
		v.Add("%s.email %q is not an email address", prefix, email)
	}
}
