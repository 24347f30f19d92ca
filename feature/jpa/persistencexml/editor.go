package persistencexml

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"persistence-setup/core/filemanager"
	"persistence-setup/core/xmldoc"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
	"persistence-setup/feature/jpa/templates"

	"github.com/beevik/etree"
)

const (
	schemaLocation10 = "http://java.sun.com/xml/ns/persistence http://java.sun.com/xml/ns/persistence/persistence_1_0.xsd"
	schemaLocation20 = "http://java.sun.com/xml/ns/persistence http://java.sun.com/xml/ns/persistence/persistence_2_0.xsd"

	// UpdateDetailsAdvisory asks the operator to fill in self-managed connection details.
	UpdateDetailsAdvisory = "Please update your database details in " + layout.PersistenceXML + "."
)

// Connection property names written for self-managed providers.
const (
	ConnectionDriverName = "datanucleus.ConnectionDriverName"
	ConnectionURL        = "datanucleus.ConnectionURL"
	ConnectionUserName   = "datanucleus.ConnectionUserName"
	ConnectionPassword   = "datanucleus.ConnectionPassword"
)

// Editor rewrites the persistence unit of the persistence descriptor.
type Editor struct {
	fm       filemanager.FileManager
	bundle   *templates.Bundle
	dialects *catalog.Dialects
}

// New creates an Editor.
func New(fm filemanager.FileManager, bundle *templates.Bundle, dialects *catalog.Dialects) *Editor {
	return &Editor{fm: fm, bundle: bundle, dialects: dialects}
}

// Update rebuilds the selected persistence unit and saves the descriptor if it changed.
// It returns the advisories raised by the change.
func (e *Editor) Update(ctx context.Context, sel catalog.Selection, projectName string) ([]string, error) {
	doc, err := xmldoc.Load(ctx, e.fm, layout.PersistenceXML, func() ([]byte, error) {
		return e.bundle.Get(templates.PersistenceXML)
	})
	if err != nil {
		return nil, err
	}

	schemaManaged, err := e.fm.Exists(ctx, layout.SchemaMarker)
	if err != nil {
		return nil, err
	}

	root := doc.Root()
	unit := resetUnit(root, sel.UnitName())

	if sel.Provider.LegacySchema() {
		root.CreateAttr("version", "1.0")
		root.CreateAttr("xsi:schemaLocation", schemaLocation10)
	} else {
		root.CreateAttr("version", "2.0")
		root.CreateAttr("xsi:schemaLocation", schemaLocation20)
	}

	provider := unit.CreateElement("provider")
	if sel.Database.PlatformManaged() {
		unit.RemoveAttr("transaction-type")
		provider.SetText(sel.Provider.AlternateAdapter)
	} else {
		unit.CreateAttr("transaction-type", "RESOURCE_LOCAL")
		provider.SetText(sel.Provider.Adapter)
	}

	properties := unit.CreateElement("properties")
	if sel.Provider.SelfManaged() {
		e.selfManagedProperties(properties, sel, projectName, schemaManaged)
	} else if err := e.standardProperties(properties, sel, schemaManaged); err != nil {
		return nil, err
	}

	if _, err := doc.Save(ctx, e.fm, layout.PersistenceXML, "persistence unit "+sel.UnitName()); err != nil {
		return nil, err
	}

	var advisories []string
	if sel.Provider.SelfManaged() && !sel.Database.IsManagedHosting() {
		advisories = append(advisories, UpdateDetailsAdvisory)
	}
	return advisories, nil
}

// resetUnit returns the named persistence unit emptied of its children,
// creating it when absent.
func resetUnit(root *etree.Element, name string) *etree.Element {
	unit := xmldoc.ChildWithAttr(root, "persistence-unit", "name", name)
	if unit != nil {
		xmldoc.RemoveChildren(unit)
	} else {
		unit = root.CreateElement("persistence-unit")
	}
	unit.CreateAttr("name", name)
	return unit
}

func (e *Editor) standardProperties(props *etree.Element, sel catalog.Selection, schemaManaged bool) error {
	dialect, err := e.dialects.Lookup(sel.Provider, sel.Database)
	if err != nil {
		return err
	}

	switch sel.Provider.ID {
	case catalog.Hibernate:
		ddl := "create"
		if schemaManaged || sel.Database.ID == catalog.DB2400 {
			ddl = "validate"
		}
		property(props, "hibernate.dialect", dialect)
		props.CreateComment(` value="create" to build a new database on each run; value="update" to modify an existing database; value="create-drop" means the same as "create" but also drops tables when Hibernate closes; value="validate" makes no changes to the database `)
		property(props, "hibernate.hbm2ddl.auto", ddl)
		property(props, "hibernate.ejb.naming_strategy", "org.hibernate.cfg.ImprovedNamingStrategy")
		property(props, "hibernate.connection.charSet", "UTF-8")
		props.CreateComment(" Uncomment the following two properties for JBoss only ")
		props.CreateComment(` property name="hibernate.validator.apply_to_ddl" value="false" /`)
		props.CreateComment(` property name="hibernate.validator.autoregister_listeners" value="false" /`)
	case catalog.OpenJPA:
		mappings := "buildSchema"
		if schemaManaged {
			mappings = "validate"
		}
		property(props, "openjpa.jdbc.DBDictionary", dialect)
		props.CreateComment(` value="buildSchema" to runtime forward map the DDL SQL; value="validate" makes no changes to the database `)
		property(props, "openjpa.jdbc.SynchronizeMappings", mappings)
		property(props, "openjpa.RuntimeUnenhancedClasses", "supported")
	case catalog.EclipseLink:
		generation := "drop-and-create-tables"
		if schemaManaged {
			generation = "none"
		}
		property(props, "eclipselink.target-database", dialect)
		props.CreateComment(` value="drop-and-create-tables" to build a new database on each run; value="create-tables" creates new tables if needed; value="none" makes no changes to the database `)
		property(props, "eclipselink.ddl-generation", generation)
		property(props, "eclipselink.ddl-generation.output-mode", "database")
		property(props, "eclipselink.weaving", "static")
	default:
		return fmt.Errorf("%w: %s", catalog.ErrUnknownProvider, sel.Provider.ID)
	}
	return nil
}

func (e *Editor) selfManagedProperties(props *etree.Element, sel catalog.Selection, projectName string, schemaManaged bool) {
	autoCreate := strconv.FormatBool(!schemaManaged)
	user := sel.UserName

	switch {
	case sel.Database.IsManagedHosting():
		property(props, "datanucleus.NontransactionalRead", "true")
		property(props, "datanucleus.NontransactionalWrite", "true")
		property(props, "datanucleus.autoCreateSchema", "false")
	case sel.Database.IsHostedPlatform():
		property(props, "datanucleus.storeManagerType", "force")
		property(props, "datanucleus.Optimistic", "false")
		property(props, "datanucleus.datastoreTransactionDelayOperations", "true")
		property(props, "datanucleus.autoCreateSchema", autoCreate)
	default:
		property(props, ConnectionDriverName, sel.Database.DriverClassName)
		property(props, "datanucleus.autoCreateSchema", autoCreate)
		user = sel.EffectiveUser()
		property(props, "datanucleus.storeManagerType", "rdbms")
	}

	// The hosted platform reads its connection from the unit properties file.
	if !sel.Database.IsHostedPlatform() {
		property(props, ConnectionURL, sel.ConnectionURL(projectName))
		property(props, ConnectionUserName, user)
		property(props, ConnectionPassword, sel.Password)
	}

	property(props, "datanucleus.autoCreateTables", autoCreate)
	for _, name := range []string{
		"datanucleus.autoCreateColumns",
		"datanucleus.autoCreateConstraints",
		"datanucleus.validateTables",
		"datanucleus.validateConstraints",
		"datanucleus.jpa.addClassTransformer",
	} {
		property(props, name, "false")
	}
}

func property(props *etree.Element, name, value string) {
	p := props.CreateElement("property")
	p.CreateAttr("name", name)
	p.CreateAttr("value", value)
}

// Exists reports whether the project has a persistence descriptor.
func Exists(ctx context.Context, fm filemanager.FileManager) (bool, error) {
	return fm.Exists(ctx, layout.PersistenceXML)
}

// ConnectionProperties returns the self-managed connection properties of the
// descriptor as sorted "name = value" lines.
func ConnectionProperties(ctx context.Context, fm filemanager.FileManager) ([]string, error) {
	doc, err := xmldoc.Load(ctx, fm, layout.PersistenceXML, nil)
	if err != nil {
		return nil, err
	}

	wanted := map[string]bool{
		ConnectionDriverName: true,
		ConnectionURL:        true,
		ConnectionUserName:   true,
		ConnectionPassword:   true,
	}
	seen := map[string]bool{}
	var out []string
	for _, unit := range doc.Root().SelectElements("persistence-unit") {
		props := unit.SelectElement("properties")
		if props == nil {
			continue
		}
		for _, p := range props.SelectElements("property") {
			name := p.SelectAttrValue("name", "")
			if !wanted[name] || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name+" = "+p.SelectAttrValue("value", ""))
		}
	}
	sort.Strings(out)
	return out, nil
}
