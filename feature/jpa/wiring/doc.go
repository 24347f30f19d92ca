// Package wiring edits the Spring application context
// (src/main/resources/META-INF/spring/applicationContext.xml).
//
// The data source is one of three shapes, never two at once:
//
//   - none, for providers that manage their own connections
//   - a jee:jndi-lookup with id "dataSource", when a JNDI name is given
//   - a pooled BasicDataSource bean with id "dataSource" otherwise
//
// The transaction manager bean is created under its id when missing and the
// annotation-driven element is pointed at it. The entityManagerFactory bean
// is always rebuilt.
package wiring
