package catalog

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidPersistenceUnit is returned for unit names that cannot be used as
// a file name.
var ErrInvalidPersistenceUnit = errors.New("invalid persistence unit name")

// Default persistence unit names.
const (
	DefaultPersistenceUnit    = "persistenceUnit"
	ManagedPersistenceUnit    = "transactions-optional"
	DefaultTransactionManager = "transactionManager"
)

// Request carries the raw selection as collected from a user.
type Request struct {
	Provider           string `json:"provider"`
	Database           string `json:"database"`
	JNDIName           string `json:"jndi_name,omitempty"`
	ApplicationID      string `json:"application_id,omitempty"`
	HostName           string `json:"host_name,omitempty"`
	DatabaseName       string `json:"database_name,omitempty"`
	UserName           string `json:"user_name,omitempty"`
	Password           string `json:"password,omitempty"`
	TransactionManager string `json:"transaction_manager,omitempty"`
	PersistenceUnit    string `json:"persistence_unit,omitempty"`
}

// Selection is the resolved, immutable input of one reconciliation.
type Selection struct {
	Provider           Provider
	Database           Database
	JNDIName           string
	ApplicationID      string
	HostName           string
	DatabaseName       string
	UserName           string
	Password           string
	TransactionManager string
	PersistenceUnit    string
}

// Resolve looks up the provider and database of r.
func (r Request) Resolve() (Selection, error) {
	provider, err := LookupProvider(r.Provider)
	if err != nil {
		return Selection{}, err
	}
	database, err := LookupDatabase(r.Database)
	if err != nil {
		return Selection{}, err
	}
	unit := strings.TrimSpace(r.PersistenceUnit)
	if err := validateUnitName(unit); err != nil {
		return Selection{}, err
	}
	return Selection{
		Provider:           provider,
		Database:           database,
		JNDIName:           strings.TrimSpace(r.JNDIName),
		ApplicationID:      strings.TrimSpace(r.ApplicationID),
		HostName:           strings.TrimSpace(r.HostName),
		DatabaseName:       strings.TrimSpace(r.DatabaseName),
		UserName:           r.UserName,
		Password:           r.Password,
		TransactionManager: strings.TrimSpace(r.TransactionManager),
		PersistenceUnit:    unit,
	}, nil
}

// validateUnitName rejects names that would escape the resources directory
// when used as a file name.
func validateUnitName(name string) error {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("persistence unit %q: %w", name, ErrInvalidPersistenceUnit)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("persistence unit %q: %w", name, ErrInvalidPersistenceUnit)
		}
	}
	return nil
}

// HasJNDI reports whether a JNDI data source name was supplied.
func (s Selection) HasJNDI() bool {
	return s.JNDIName != ""
}

// UnitName returns the persistence unit to write: the explicit one, or the
// default for the selected database.
func (s Selection) UnitName() string {
	if s.PersistenceUnit != "" {
		return s.PersistenceUnit
	}
	if s.Database.IsManagedHosting() {
		return ManagedPersistenceUnit
	}
	return DefaultPersistenceUnit
}

// PlatformUnitName names the hosted-platform connection properties file.
func (s Selection) PlatformUnitName() string {
	if s.PersistenceUnit != "" {
		return s.PersistenceUnit
	}
	return DefaultPersistenceUnit
}

// TransactionManagerID returns the transaction manager bean id.
func (s Selection) TransactionManagerID() string {
	if s.TransactionManager != "" {
		return s.TransactionManager
	}
	return DefaultTransactionManager
}

// ConnectionURL resolves the database connection string for this selection.
func (s Selection) ConnectionURL(projectName string) string {
	return s.Database.ConnectionURL(s.HostName, s.DatabaseName, projectName)
}

// EffectiveUser applies the database's default login when no user was given.
func (s Selection) EffectiveUser() string {
	return s.Database.UserOrDefault(s.UserName)
}
