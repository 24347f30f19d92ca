package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProvider is returned for provider ids outside the catalog.
var ErrUnknownProvider = errors.New("unknown ORM provider")

// Provider ids.
const (
	Hibernate    = "HIBERNATE"
	OpenJPA      = "OPENJPA"
	EclipseLink  = "ECLIPSELINK"
	DataNucleus  = "DATANUCLEUS"
	DataNucleus2 = "DATANUCLEUS_2"
)

// Provider is one row of the ORM provider catalog.
type Provider struct {
	// ID is the selection identifier (e.g. "HIBERNATE").
	ID string `json:"id"`
	// Adapter is the persistence provider class for resource-local units.
	Adapter string `json:"adapter"`
	// AlternateAdapter is used when the platform manages the unit.
	AlternateAdapter string `json:"alternate_adapter"`
}

// SelfManaged reports whether the provider configures its own connections
// (the DataNucleus family), bypassing data sources and database.properties.
func (p Provider) SelfManaged() bool {
	return strings.HasPrefix(p.ID, DataNucleus)
}

// LegacySchema reports whether the provider requires the JPA 1.0 persistence schema.
func (p Provider) LegacySchema() bool {
	return p.ID == DataNucleus
}

// DialectKey returns the dialect catalog key for the given database.
func (p Provider) DialectKey(db Database) string {
	return p.ID + "." + db.ID
}

var providers = []Provider{
	{ID: Hibernate, Adapter: "org.hibernate.ejb.HibernatePersistence", AlternateAdapter: "org.hibernate.ejb.HibernatePersistence"},
	{ID: OpenJPA, Adapter: "org.apache.openjpa.persistence.PersistenceProviderImpl", AlternateAdapter: "org.apache.openjpa.persistence.PersistenceProviderImpl"},
	{ID: EclipseLink, Adapter: "org.eclipse.persistence.jpa.PersistenceProvider", AlternateAdapter: "org.eclipse.persistence.jpa.PersistenceProvider"},
	{ID: DataNucleus, Adapter: "org.datanucleus.jpa.PersistenceProviderImpl", AlternateAdapter: "org.datanucleus.store.appengine.jpa.DatastorePersistenceProvider"},
	{ID: DataNucleus2, Adapter: "org.datanucleus.api.jpa.PersistenceProviderImpl", AlternateAdapter: "com.force.sdk.jpa.PersistenceProviderImpl"},
}

// Providers returns the provider catalog in display order.
func Providers() []Provider {
	return append([]Provider(nil), providers...)
}

// ProviderIDs returns every provider id in catalog order.
func ProviderIDs() []string {
	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}
	return ids
}

// LookupProvider finds a provider by id, ignoring case.
func LookupProvider(id string) (Provider, error) {
	for _, p := range providers {
		if strings.EqualFold(p.ID, strings.TrimSpace(id)) {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
}
