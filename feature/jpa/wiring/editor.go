package wiring

import (
	"context"

	"persistence-setup/core/filemanager"
	"persistence-setup/core/xmldoc"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
	"persistence-setup/feature/jpa/templates"

	"github.com/beevik/etree"
)

// Bean ids and classes.
const (
	DataSourceID           = "dataSource"
	EntityManagerFactoryID = "entityManagerFactory"

	PooledDataSourceClass             = "org.apache.commons.dbcp.BasicDataSource"
	TransactionManagerClass           = "org.springframework.orm.jpa.JpaTransactionManager"
	ContainerEntityManagerFactory     = "org.springframework.orm.jpa.LocalContainerEntityManagerFactoryBean"
	ContainerFreeEntityManagerFactory = "org.springframework.orm.jpa.LocalEntityManagerFactoryBean"
)

// poolProperties are the fixed data source properties in write order.
var poolProperties = [][2]string{
	{"driverClassName", "${database.driverClassName}"},
	{"url", "${database.url}"},
	{"username", "${database.username}"},
	{"password", "${database.password}"},
	{"testOnBorrow", "true"},
	{"testOnReturn", "true"},
	{"testWhileIdle", "true"},
	{"timeBetweenEvictionRunsMillis", "1800000"},
	{"numTestsPerEvictionRun", "3"},
	{"minEvictableIdleTimeMillis", "1800000"},
}

// Editor rewrites the data source, transaction and entity manager wiring of
// the application context.
type Editor struct {
	fm     filemanager.FileManager
	bundle *templates.Bundle
}

// New creates an Editor.
func New(fm filemanager.FileManager, bundle *templates.Bundle) *Editor {
	return &Editor{fm: fm, bundle: bundle}
}

// Update applies the selection to the application context and saves it if it changed.
func (e *Editor) Update(ctx context.Context, sel catalog.Selection) error {
	doc, err := xmldoc.Load(ctx, e.fm, layout.ApplicationContext, func() ([]byte, error) {
		return e.bundle.Get(templates.ApplicationContext)
	})
	if err != nil {
		return err
	}

	root := doc.Root()
	beans := xmldoc.ChildrenWithAttr(root, "bean", "id", DataSourceID)
	lookups := xmldoc.ChildrenWithAttr(root, "jndi-lookup", "id", DataSourceID)

	switch {
	case sel.Provider.SelfManaged():
		xmldoc.RemoveAll(beans...)
		xmldoc.RemoveAll(lookups...)
	case sel.HasJNDI():
		var lookup *etree.Element
		if len(lookups) > 0 {
			lookup = lookups[0]
			xmldoc.RemoveAll(lookups[1:]...)
		} else {
			lookup = root.CreateElement("jee:jndi-lookup")
			lookup.CreateAttr("id", DataSourceID)
		}
		lookup.CreateAttr("jndi-name", sel.JNDIName)
		xmldoc.RemoveAll(beans...)
	default:
		var bean *etree.Element
		if len(beans) > 0 {
			bean = beans[0]
			xmldoc.RemoveAll(beans[1:]...)
		} else {
			bean = root.CreateElement("bean")
		}
		pooledDataSource(bean, sel.Database)
		xmldoc.RemoveAll(lookups...)
	}

	tm := sel.TransactionManagerID()
	if xmldoc.ChildWithAttr(root, "bean", "id", tm) == nil {
		bean := root.CreateElement("bean")
		bean.CreateAttr("id", tm)
		bean.CreateAttr("class", TransactionManagerClass)
		ref(bean, "entityManagerFactory", EntityManagerFactoryID)
	}

	if annotationDriven := root.SelectElement("annotation-driven"); annotationDriven != nil {
		annotationDriven.CreateAttr("transaction-manager", tm)
	} else {
		annotationDriven = root.CreateElement("tx:annotation-driven")
		annotationDriven.CreateAttr("mode", "aspectj")
		annotationDriven.CreateAttr("transaction-manager", tm)
	}

	xmldoc.RemoveAll(xmldoc.ChildrenWithAttr(root, "bean", "id", EntityManagerFactoryID)...)
	emf := root.CreateElement("bean")
	emf.CreateAttr("id", EntityManagerFactoryID)
	if sel.Database.IsManagedHosting() {
		emf.CreateAttr("class", ContainerFreeEntityManagerFactory)
		property(emf, "persistenceUnitName", sel.UnitName())
	} else {
		emf.CreateAttr("class", ContainerEntityManagerFactory)
		property(emf, "persistenceUnitName", sel.UnitName())
		if !sel.Provider.SelfManaged() {
			ref(emf, DataSourceID, DataSourceID)
		}
	}

	_, err = doc.Save(ctx, e.fm, layout.ApplicationContext, "data source and entity manager wiring")
	return err
}

// pooledDataSource brings bean to the fixed pooled data source definition.
// Unrelated properties are kept.
func pooledDataSource(bean *etree.Element, db catalog.Database) {
	bean.CreateAttr("class", PooledDataSourceClass)
	bean.CreateAttr("destroy-method", "close")
	bean.CreateAttr("id", DataSourceID)

	for _, p := range poolProperties {
		existing := xmldoc.ChildrenWithAttr(bean, "property", "name", p[0])
		if len(existing) == 0 {
			property(bean, p[0], p[1])
			continue
		}
		existing[0].CreateAttr("value", p[1])
		xmldoc.RemoveAll(existing[1:]...)
	}

	xmldoc.RemoveAll(xmldoc.ChildrenWithAttr(bean, "property", "name", "validationQuery")...)
	if db.ValidationQuery != "" {
		property(bean, "validationQuery", db.ValidationQuery)
	}
}

func property(parent *etree.Element, name, value string) {
	p := parent.CreateElement("property")
	p.CreateAttr("name", name)
	p.CreateAttr("value", value)
}

func ref(parent *etree.Element, name, bean string) {
	p := parent.CreateElement("property")
	p.CreateAttr("name", name)
	p.CreateAttr("ref", bean)
}
