package wiring

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/observability"
)

// Host is the graph surface the resolver reads and writes.
type Host interface {
	HasOutput(node, socket string) bool
	HasInput(node, socket string) bool
	// IsLinked reports whether an input socket already has an incoming link.
	IsLinked(node, socket string) bool
	Link(fromNode, fromSocket, toNode, toSocket string) error
	// InternalImage looks up a node inside a group template. found reports
	// whether it exists, populated whether it holds image data.
	InternalImage(template, node string) (found, populated bool)
}

// Selection size limits.
const (
	MinSelection = 2
	MaxSelection = 3
)

// Resolver decides and creates links between role nodes.
type Resolver struct {
	host         Host
	logger       *log.Logger
	mappingRules []MappingRule
	bsdfRules    []BSDFRule
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for per-pair debug traces.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMappingRules replaces the Mapping to Loader table.
func WithMappingRules(rules []MappingRule) Option {
	return func(r *Resolver) { r.mappingRules = rules }
}

// WithBSDFRules replaces the Loader to BSDF table.
func WithBSDFRules(rules []BSDFRule) Option {
	return func(r *Resolver) { r.bsdfRules = rules }
}

// New creates a resolver over host using the default rule tables.
func New(host Host, opts ...Option) *Resolver {
	r := &Resolver{
		host:         host,
		logger:       log.New(io.Discard),
		mappingRules: MappingRules,
		bsdfRules:    BSDFRules,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Validate checks that sel holds between MinSelection and MaxSelection
// group nodes.
func Validate(sel []Member) error {
	if n := len(sel); n < MinSelection || n > MaxSelection {
		return errors.New(errors.ErrCodePreconditionNotMet,
			"select %d or %d group nodes (got %d)", MinSelection, MaxSelection, n)
	}
	for _, m := range sel {
		if !m.Group {
			return errors.New(errors.ErrCodePreconditionNotMet, "%q is not a group node", m.Name)
		}
	}
	return nil
}

// Resolve validates the selection, identifies roles and runs both phases.
// It fails with PRECONDITION_NOT_MET for an invalid selection and with
// MISSING_ROLE when no Loader is selected; in both cases nothing is linked.
func (r *Resolver) Resolve(ctx context.Context, sel []Member) (*Result, error) {
	if err := Validate(sel); err != nil {
		return nil, err
	}
	roles := IdentifyRoles(sel)
	if roles.Loader == nil {
		return nil, errors.New(errors.ErrCodeMissingRole, "a '%s' node must be selected", LoaderPrefix)
	}

	res := &Result{Roles: roles}
	if roles.Mapping != nil {
		res.Mapping = r.ConnectMappingToLoader(ctx, *roles.Mapping, *roles.Loader)
	}
	if roles.BSDF != nil {
		res.BSDF = r.ConnectLoaderToBSDF(ctx, *roles.Loader, *roles.BSDF)
	}
	return res, nil
}

// ConnectMappingToLoader links Mapping outputs to Loader inputs.
func (r *Resolver) ConnectMappingToLoader(ctx context.Context, mapping, loader Member) Phase {
	r.logger.Debug("checking mapping to loader", "mapping", mapping.Name, "loader", loader.Name)
	p := Phase{Name: CategoryMappingLoader}
	for _, rule := range r.mappingRules {
		d := Decision{
			From: mapping.Name, FromSocket: rule.Output,
			To: loader.Name, ToSocket: rule.Input,
		}
		switch {
		case !r.host.HasOutput(mapping.Name, rule.Output) || !r.host.HasInput(loader.Name, rule.Input):
			d.Outcome = SkippedMissing
		case r.host.IsLinked(loader.Name, rule.Input):
			d.Outcome = SkippedLinked
		default:
			d.Outcome = r.link(d)
		}
		p.record(ctx, d)
	}
	return p
}

type internalImage struct{ found, populated bool }

// ConnectLoaderToBSDF links Loader outputs to BSDF inputs whose channel is
// populated inside the Loader's template.
func (r *Resolver) ConnectLoaderToBSDF(ctx context.Context, loader, bsdf Member) Phase {
	r.logger.Debug("checking loader to bsdf", "loader", loader.Name, "bsdf", bsdf.Name)

	images := make(map[string]internalImage, len(r.bsdfRules))
	for _, rule := range r.bsdfRules {
		if _, seen := images[rule.ImageNode]; !seen {
			found, populated := r.host.InternalImage(loader.Template, rule.ImageNode)
			images[rule.ImageNode] = internalImage{found, populated}
		}
	}

	p := Phase{Name: CategoryLoaderBSDF}
	for _, rule := range r.bsdfRules {
		d := Decision{
			From: loader.Name, FromSocket: rule.Output,
			To: bsdf.Name, ToSocket: rule.Input,
			ImageNode: rule.ImageNode,
		}
		img := images[rule.ImageNode]
		switch {
		case !r.host.HasOutput(loader.Name, rule.Output) || !r.host.HasInput(bsdf.Name, rule.Input):
			d.Outcome = SkippedMissing
		case !img.found || !img.populated:
			d.Outcome = SkippedNoImage
		case r.host.IsLinked(bsdf.Name, rule.Input):
			d.Outcome = SkippedLinked
		default:
			d.Outcome = r.link(d)
		}
		p.record(ctx, d)
	}
	return p
}

func (r *Resolver) link(d Decision) Outcome {
	if err := r.host.Link(d.From, d.FromSocket, d.To, d.ToSocket); err != nil {
		r.logger.Warn("link failed", "from", d.fromEndpoint(), "to", d.toEndpoint(), "err", err)
		return SkippedMissing
	}
	r.logger.Debug("linking", "from", d.fromEndpoint(), "to", d.toEndpoint(), "image", d.ImageNode)
	return Created
}

func (p *Phase) record(ctx context.Context, d Decision) {
	p.Decisions = append(p.Decisions, d)
	if d.Outcome == Created {
		p.Created++
	}
	observability.Wiring().OnLinkDecision(ctx, p.Name, d.fromEndpoint(), d.toEndpoint(), d.Outcome.String())
}
