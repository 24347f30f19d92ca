package propfile

import (
	"context"

	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
)

// DataNucleusCategory is the log category quieted for self-managed providers.
const DataNucleusCategory = "log4j.category.DataNucleus"

// UpdateLog4j adds a WARN category for self-managed providers and removes it
// otherwise. Projects without a log4j configuration are left alone.
func (r *Reconciler) UpdateLog4j(ctx context.Context, provider catalog.Provider) (bool, error) {
	exists, err := r.fm.Exists(ctx, layout.Log4jProperties)
	if err != nil || !exists {
		return false, err
	}

	p, _, err := r.load(ctx, layout.Log4jProperties, "")
	if err != nil {
		return false, err
	}

	_, present := p.Get(DataNucleusCategory)
	switch {
	case provider.SelfManaged() && !present:
		if _, _, err := p.Set(DataNucleusCategory, "WARN"); err != nil {
			return false, err
		}
		return r.store(ctx, layout.Log4jProperties, p, "DataNucleus log category")
	case !provider.SelfManaged() && present:
		p.Delete(DataNucleusCategory)
		return r.store(ctx, layout.Log4jProperties, p, "removed DataNucleus log category")
	}
	return false, nil
}
