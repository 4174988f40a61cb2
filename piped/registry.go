package piped

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/log"
	"github.com/spf13/viper"
)

// Registry owns the session's mirror fleet. Construction and probing
// are separate phases so callers can hold a fully built registry before
// any network traffic starts.
type Registry struct {
	instances []*Instance
	official  *Instance

	probes sync.WaitGroup
}

// NewRegistry builds a registry from explicit mirror addresses plus a
// distinguished official mirror. The official mirror is part of the
// fleet and carries elevated selection priority. No probing happens
// here; call StartProbes.
func NewRegistry(hosts []string, official string) *Registry {
	r := &Registry{
		official: NewOfficial(official),
	}

	r.instances = append(r.instances, r.official)
	for _, host := range lo.Uniq(hosts) {
		if host == official {
			continue
		}
		r.instances = append(r.instances, New(host))
	}

	return r
}

// Default builds the registry from the built-in fleet merged with the
// user's configured mirrors.
func Default() *Registry {
	hosts := append([]string{}, builtinHosts...)
	hosts = append(hosts, viper.GetStringSlice(key.MirrorsCustom)...)

	return NewRegistry(hosts, viper.GetString(key.MirrorsOfficial))
}

// StartProbes launches one health probe per instance and returns
// immediately. Probes run concurrently and each instance becomes
// initialized as its own probe completes, so ranking over the fleet is
// valid at any point during the settling window.
func (r *Registry) StartProbes(ctx context.Context) {
	log.Debugf("probing %d mirrors", len(r.instances))

	for _, instance := range r.instances {
		r.probes.Add(1)
		go func(i *Instance) {
			defer r.probes.Done()
			i.Probe(ctx)
		}(instance)
	}
}

// Settled blocks until every launched probe has completed.
func (r *Registry) Settled() {
	r.probes.Wait()
}

// Instances returns the fleet. The returned slice is a copy; the
// instances themselves are shared and individually synchronized.
func (r *Registry) Instances() []*Instance {
	return append([]*Instance{}, r.instances...)
}

// Official returns the distinguished high-priority mirror.
func (r *Registry) Official() *Instance {
	return r.official
}

// Ranked returns the healthy fleet in selection order.
func (r *Registry) Ranked() []*Instance {
	return Rank(r.instances)
}
