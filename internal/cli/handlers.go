package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BartekS5/loadplan/internal/config"
	"github.com/BartekS5/loadplan/internal/plan"
	"github.com/BartekS5/loadplan/internal/registry"
	"github.com/BartekS5/loadplan/internal/schema"
	"github.com/BartekS5/loadplan/pkg/database"
	"github.com/BartekS5/loadplan/pkg/logger"
	"github.com/BartekS5/loadplan/pkg/models"
)

var errInvalidPlan = errors.New("load plan is invalid")

func loadPlan(opts *Options) (*models.LoadPlan, error) {
	logger.Debugf("Loading plan %s", opts.PlanFile)
	p, err := config.LoadPlanFile(opts.PlanFile)
	if err != nil {
		return nil, err
	}
	for _, w := range plan.Warnings(p) {
		logger.Warnf("%s", w)
	}
	return p, nil
}

func runValidate(out io.Writer, opts *Options) error {
	p, err := loadPlan(opts)
	if err != nil {
		var verrs *plan.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, e := range verrs.Errors {
			fmt.Fprintf(out, "ERROR %s\n", e)
		}
		return fmt.Errorf("%s: %w", opts.PlanFile, errInvalidPlan)
	}

	fmt.Fprintf(out, "OK %s: %d context prefixes, %d edge property columns\n",
		opts.PlanFile, len(p.Context), len(p.EdgePlan.PropertyColumns))
	return nil
}

func runShow(out io.Writer, opts *Options, format string) error {
	f, err := config.ParseFormat(format)
	if err != nil {
		return err
	}
	p, err := loadPlan(opts)
	if err != nil {
		return err
	}
	data, err := config.MarshalPlan(p, f)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func runResolve(out io.Writer, opts *Options, ro *resolveOptions) error {
	p, err := loadPlan(opts)
	if err != nil {
		return err
	}
	r := plan.NewResolver(p)

	if ro.Entity != "" {
		var entity *models.EntityPlan
		switch strings.ToLower(ro.Entity) {
		case "source":
			entity = &p.SourcePlan
		case "target":
			entity = &p.TargetPlan
		default:
			return fmt.Errorf("unknown entity %q (want source or target)", ro.Entity)
		}
		id, err := r.ResolveEntityID(entity, ro.Value)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, id)
		return nil
	}

	col, ok := r.FindColumn(ro.Column)
	if !ok {
		return fmt.Errorf("no property column named %q in plan", ro.Column)
	}
	val, err := r.ResolveCell(col, ro.Value)
	if err != nil {
		return err
	}

	switch v := val.(type) {
	case nil:
		logger.Infof("Empty value and no default for %s", col.Attribute())
	case []string:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	default:
		fmt.Fprintln(out, v)
	}
	return nil
}

func runCheckColumns(ctx context.Context, out io.Writer, opts *Options, table string) error {
	if err := opts.Config.RequireSQL(); err != nil {
		return err
	}
	p, err := loadPlan(opts)
	if err != nil {
		return err
	}

	db, err := database.ConnectSQL(ctx, opts.Config.SQLConnString)
	if err != nil {
		return err
	}
	defer db.Close()

	cols, err := schema.NewInspector(db).TableColumns(ctx, table)
	if err != nil {
		return err
	}
	logger.Debugf("Table %s has %d columns", table, len(cols))

	missing := plan.CheckColumns(plan.ReferencedColumns(p), cols)
	if len(missing) == 0 {
		fmt.Fprintf(out, "OK all plan columns exist in %s\n", table)
		return nil
	}
	for _, m := range missing {
		fmt.Fprintf(out, "MISSING %s: column %q\n", m.Path, m.Column)
	}
	return fmt.Errorf("%d plan column(s) missing from %s", len(missing), table)
}

func withRegistry(ctx context.Context, opts *Options, fn func(*registry.MongoRegistry) error) error {
	if err := opts.Config.RequireMongo(); err != nil {
		return err
	}
	client, err := database.ConnectMongo(ctx, opts.Config.MongoConnString)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warnf("MongoDB disconnect failed: %v", err)
		}
	}()
	return fn(registry.NewMongoRegistry(client, opts.Config.MongoDatabase))
}

func runPublish(ctx context.Context, out io.Writer, opts *Options, name string) error {
	p, err := loadPlan(opts)
	if err != nil {
		return err
	}
	return withRegistry(ctx, opts, func(reg *registry.MongoRegistry) error {
		revision, err := reg.Publish(ctx, name, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", name, revision)
		return nil
	})
}

func runFetch(ctx context.Context, out io.Writer, opts *Options, name, outFile string) error {
	return withRegistry(ctx, opts, func(reg *registry.MongoRegistry) error {
		p, summary, err := reg.Fetch(ctx, name)
		if err != nil {
			return err
		}
		logger.Infof("Fetched plan %s revision %s", summary.Name, summary.Revision)

		if outFile != "" {
			return config.WritePlanFile(p, outFile)
		}
		data, err := config.MarshalPlan(p, config.FormatJSON)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	})
}

func runList(ctx context.Context, out io.Writer, opts *Options) error {
	return withRegistry(ctx, opts, func(reg *registry.MongoRegistry) error {
		summaries, err := reg.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Fprintf(out, "%s\t%s\t%s\n", s.Name, s.Revision, s.PublishedAt.Format(time.RFC3339))
		}
		return nil
	})
}

func runDelete(ctx context.Context, out io.Writer, opts *Options, name string) error {
	return withRegistry(ctx, opts, func(reg *registry.MongoRegistry) error {
		if err := reg.Delete(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s\n", name)
		return nil
	})
}
