package resource

import (
	"context"
	"net/url"
	"strconv"

	"docker-up/core/docker"
	"docker-up/core/future"
	"docker-up/core/utils"

	cerrdefs "github.com/containerd/errdefs"
	"go.uber.org/zap"
)

// ListConcurrency bounds the inspects in flight during List.
const ListConcurrency = 8

// Context holds the collaborators shared by every Resource.
// A Resource only references them; it never mutates or closes them.
type Context struct {
	// Docker is the transport client.
	Docker docker.Client
	// Log receives operation logs. nil disables logging.
	Log *zap.Logger
}

// Factory binds a validated Descriptor to a Context.
type Factory func(Context) *Resource

// Resource exposes the operations of one resource kind.
// It is stateless and safe for concurrent use.
type Resource struct {
	desc   Descriptor
	docker docker.Client
	log    *zap.Logger
}

// NewFactory validates d and returns a Factory for it.
// An invalid descriptor returns a *ConfigError.
func NewFactory(d Descriptor) (Factory, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return func(ctx Context) *Resource {
		log := ctx.Log
		if log == nil {
			log = zap.NewNop()
		}
		return &Resource{desc: d, docker: ctx.Docker, log: log}
	}, nil
}

// Name returns the resource kind.
func (r *Resource) Name() string {
	return r.desc.Name
}

// Descriptor returns the descriptor the resource was bound with.
func (r *Resource) Descriptor() Descriptor {
	return r.desc
}

// Up converges the remote state to cfg and returns the final remote state.
func (r *Resource) Up(cfg Document) future.Future[Document] {
	absent := func(current Document) bool { return current == nil }
	updatable := func(Document) bool { return r.desc.HasUpdate }

	create := func(Document) future.Future[Document] {
		return future.Map(r.Create(cfg), func(string) Document { return nil })
	}
	update := func(current Document) future.Future[Document] {
		return future.Chain(future.Lift(r.version)(current), func(version int) future.Future[Document] {
			return r.updateAt(cfg, version)
		})
	}

	return future.Waterfall(
		func(Document) future.Future[Document] {
			return r.Inspect(cfg).ChainRej(notFoundAs[Document](nil))
		},
		future.Iff(absent, create, future.Iff(updatable, update, nil)),
		future.IgnoreValues[Document](r.Inspect(cfg)),
	)(cfg)
}

// Down removes the resource described by cfg. An absent resource resolves
// to nil without error.
func (r *Resource) Down(cfg Document) future.Future[Document] {
	return future.Chain(r.Inspect(cfg), func(Document) future.Future[Document] {
		return r.Remove(cfg)
	}).ChainRej(notFoundAs[Document](nil))
}

// Inspect fetches the remote state of the resource identified by cfg.
func (r *Resource) Inspect(cfg Document) future.Future[Document] {
	return future.New(func(ctx context.Context) (Document, error) {
		id, err := r.identify(cfg)
		if err != nil {
			return nil, err
		}

		r.log.Info("Inspecting "+r.desc.Name+": "+id,
			zap.String("action", r.action("inspect:before")),
			zap.Any("config", cfg),
		)

		return r.call(func() (any, error) {
			return r.docker.Get(ctx, r.singlePath(id), nil)
		}).Observe(
			func(err error) {
				r.log.Error("Error inspecting "+r.desc.Name+": "+id,
					zap.String("action", r.action("inspect:after")),
					zap.Error(err),
				)
			},
			func(response Document) {
				r.log.Info("Inspected "+r.desc.Name+": "+id,
					zap.String("action", r.action("inspect:after")),
					zap.Any("config", cfg),
					zap.Any("response", response),
				)
			},
		).Run(ctx)
	})
}

// Create creates the resource and returns its identifier.
func (r *Resource) Create(cfg Document) future.Future[string] {
	return future.New(func(ctx context.Context) (string, error) {
		name := utils.ToString(cfg["Name"])

		r.log.Info("Creating "+r.desc.Name+": "+name,
			zap.String("action", r.action("create:before")),
			zap.Any("config", cfg),
		)

		created := r.call(func() (any, error) {
			return r.docker.Post(ctx, r.desc.collectionPath()+"/create", nil, cfg)
		}).Observe(
			func(err error) {
				r.log.Error("Error creating "+r.desc.Name+": "+name,
					zap.String("action", r.action("create")),
					zap.Error(err),
				)
			},
			func(response Document) {
				if warning := warningOf(response); warning != "" {
					r.log.Warn(warning,
						zap.String("action", r.action("create")),
						zap.Any("config", cfg),
					)
				}
				r.log.Info(r.desc.Name+" created: "+name,
					zap.String("action", r.action("create")),
					zap.Any("config", cfg),
					zap.Any("response", response),
				)
			},
		)

		return future.Map(created, r.idOf).Run(ctx)
	})
}

// List returns the full remote state of every instance of the kind, in the
// order the daemon listed them.
func (r *Resource) List() future.Future[[]Document] {
	get := future.New(func(ctx context.Context) (any, error) {
		return r.docker.Get(ctx, r.desc.collectionPath(), nil)
	}).Observe(
		func(err error) {
			r.log.Error("Error listing "+r.desc.Name,
				zap.String("action", r.action("list:after")),
				zap.Error(err),
			)
		},
		func(response any) {
			r.log.Info("Listed "+r.desc.Name,
				zap.String("action", r.action("list:after")),
				zap.Any("response", response),
			)
		},
	)
	before := future.Tap(func(struct{}) {
		r.log.Info("Listing "+r.desc.Name,
			zap.String("action", r.action("list:before")),
		)
	})
	listed := future.Chain(before(struct{}{}), future.IgnoreValues[struct{}](get))

	return future.Chain(future.Chain(listed, future.Lift(r.listPayload)), func(summaries []Document) future.Future[[]Document] {
		inspects := make([]future.Future[Document], len(summaries))
		for i, summary := range summaries {
			inspects[i] = r.Inspect(summary)
		}
		return future.Parallel(ListConcurrency, inspects)
	})
}

// Update re-inspects the resource for its current version and sends cfg as
// a version-guarded update. Kinds without update support resolve to nil
// without any remote call.
func (r *Resource) Update(cfg Document) future.Future[Document] {
	if !r.desc.HasUpdate {
		return future.Of[Document](nil)
	}
	return future.Chain(future.Chain(r.Inspect(cfg), future.Lift(r.version)), func(version int) future.Future[Document] {
		return r.updateAt(cfg, version)
	})
}

// Remove deletes the resource and resolves to nil.
func (r *Resource) Remove(cfg Document) future.Future[Document] {
	return future.New(func(ctx context.Context) (Document, error) {
		name, err := r.identify(cfg)
		if err != nil {
			return nil, err
		}

		r.log.Info("Removing "+r.desc.Name+": "+name,
			zap.String("action", r.action("remove:before")),
			zap.Any("config", cfg),
		)

		removed := future.New(func(ctx context.Context) (any, error) {
			return r.docker.Delete(ctx, r.singlePath(name))
		}).Observe(
			func(err error) {
				r.log.Error("Error removing "+r.desc.Name+": "+name,
					zap.String("action", r.action("remove:after")),
					zap.Error(err),
				)
			},
			func(any) {
				r.log.Info("Removed "+r.desc.Name+": "+name,
					zap.String("action", r.action("remove:after")),
					zap.Any("config", cfg),
				)
			},
		)

		return future.Map(removed, func(any) Document { return nil }).Run(ctx)
	})
}

// updateAt posts cfg to the update endpoint guarded by version.
func (r *Resource) updateAt(cfg Document, version int) future.Future[Document] {
	return future.New(func(ctx context.Context) (Document, error) {
		name, err := r.identify(cfg)
		if err != nil {
			return nil, err
		}
		params := url.Values{"version": {strconv.Itoa(version)}}

		r.log.Info("Updating "+r.desc.Name+": "+name,
			zap.String("action", r.action("update:before")),
			zap.Any("config", cfg),
			zap.Int("version", version),
		)

		return r.call(func() (any, error) {
			return r.docker.Post(ctx, r.singlePath(name)+"/update", params, cfg)
		}).Observe(
			func(err error) {
				r.log.Error("Error updating "+r.desc.Name+": "+name,
					zap.String("action", r.action("update:after")),
					zap.Error(err),
				)
			},
			func(response Document) {
				r.log.Info("Updated "+r.desc.Name+": "+name,
					zap.String("action", r.action("update:after")),
					zap.Any("config", cfg),
					zap.Any("response", response),
				)
			},
		).Run(ctx)
	})
}

// call runs a transport call and narrows its response to a Document.
func (r *Resource) call(fn func() (any, error)) future.Future[Document] {
	return future.New(func(context.Context) (Document, error) {
		response, err := fn()
		if err != nil {
			return nil, err
		}
		return utils.ToMap(response), nil
	})
}

// identify prefers the Name field and falls back to the descriptor's id field.
func (r *Resource) identify(cfg Document) (string, error) {
	if name := utils.ToString(cfg["Name"]); name != "" {
		return name, nil
	}
	if id := r.idOf(cfg); id != "" {
		return id, nil
	}
	return "", cerrdefs.ErrInvalidArgument.WithMessage(r.desc.Name + ": config has neither Name nor " + r.desc.IDField)
}

func (r *Resource) idOf(doc Document) string {
	return utils.ToString(doc[r.desc.IDField])
}

// version reads the optimistic concurrency token of a remote state.
func (r *Resource) version(current Document) (int, error) {
	index, ok := utils.Lookup(current, "Version.Index")
	if !ok {
		return 0, cerrdefs.ErrInvalidArgument.WithMessage(r.desc.Name + ": remote state has no Version.Index")
	}
	return utils.ToInt(index), nil
}

// listPayload extracts the summaries from a list response.
func (r *Resource) listPayload(response any) ([]Document, error) {
	payload := response
	if r.desc.ListField != "" {
		payload = utils.ToMap(response)[r.desc.ListField]
	}
	if payload == nil {
		return []Document{}, nil
	}

	items, ok := payload.([]any)
	if !ok {
		return nil, cerrdefs.ErrInvalidArgument.WithMessage(r.desc.Name + ": list response is not an array")
	}
	summaries := make([]Document, 0, len(items))
	for _, item := range items {
		summary := utils.ToMap(item)
		if summary == nil {
			return nil, cerrdefs.ErrInvalidArgument.WithMessage(r.desc.Name + ": list entry is not an object")
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *Resource) singlePath(id string) string {
	return r.desc.collectionPath() + "/" + url.PathEscape(id)
}

func (r *Resource) action(step string) string {
	return r.desc.Name + ":" + step
}

// warningOf returns the daemon warnings carried by a create response.
func warningOf(response Document) string {
	if warning := utils.ToString(response["Warning"]); warning != "" {
		return warning
	}
	warnings := utils.ToStringSlice(response["Warnings"])
	if len(warnings) == 0 {
		return ""
	}
	joined := warnings[0]
	for _, w := range warnings[1:] {
		joined += "; " + w
	}
	return joined
}

// notFoundAs recovers a 404 into value and lets every other failure through.
func notFoundAs[T any](value T) func(error) future.Future[T] {
	return func(err error) future.Future[T] {
		if docker.IsNotFound(err) {
			return future.Of(value)
		}
		return future.Reject[T](err)
	}
}
