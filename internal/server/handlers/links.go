package handlers

import (
	"context"
	"net/http"

	"github.com/optimade/optimade-go/internal/server/response"
	"github.com/optimade/optimade-go/pkg/entries"
	"github.com/optimade/optimade-go/pkg/logging"
	"github.com/optimade/optimade-go/pkg/providers"
)

// HandleLinks handles GET /links: the local links collection followed by the
// provider list. A provider list that cannot be retrieved leaves only the
// local links.
func (h *Handlers) HandleLinks(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Parser().ParseListing(r.URL.Query())
	if err != nil {
		response.ErrorFromType(w, r, err)
		return
	}
	if err := h.checkListing(p); err != nil {
		response.ErrorFromType(w, r, err)
		return
	}

	docs, err := h.allLinks(r.Context())
	if err != nil {
		response.ErrorFromType(w, r, err)
		return
	}
	coll, err := entries.NewMemoryCollection(entries.TypeLinks, docs)
	if err != nil {
		response.InternalError(w, r, err)
		return
	}

	result, err := coll.Find(r.Context(), entries.Query{
		Filter: p.Filter,
		Limit:  p.PageLimit,
		Offset: offset(p),
		Sort:   p.SortFields(),
		Fields: p.Fields(),
	})
	if err != nil {
		response.ErrorFromType(w, r, err)
		return
	}

	links, err := h.pageLinks(r, offset(p), len(result.Data), result.MoreAvailable)
	if err != nil {
		response.ErrorFromType(w, r, err)
		return
	}

	available := result.Available
	response.OK(w, response.Document{
		Data:  result.Data,
		Meta:  h.meta(r, len(result.Data), &available, result.MoreAvailable, unrecognizedWarnings(p.Unrecognized())),
		Links: links,
	})
}

// allLinks returns the local links and then every provider whose id is not
// already taken by a local link.
func (h *Handlers) allLinks(ctx context.Context) ([]entries.Resource, error) {
	local, err := h.collection(entries.TypeLinks)
	if err != nil {
		return nil, err
	}
	n, err := local.Count(ctx)
	if err != nil {
		return nil, err
	}
	res, err := local.Find(ctx, entries.Query{Limit: n})
	if err != nil {
		return nil, err
	}
	docs := res.Data

	resolver, err := h.app.Resolver()
	if err != nil {
		return nil, err
	}
	if resolver == nil {
		return docs, nil
	}
	records, err := resolver.Resolve(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Provider list unusable, serving local links only")
		return docs, nil
	}

	taken := make(map[string]bool, len(docs))
	for _, d := range docs {
		taken[d.ID] = true
	}
	for _, rec := range records {
		if rec.ID() == "" || taken[rec.ID()] {
			continue
		}
		taken[rec.ID()] = true
		docs = append(docs, ProviderLink(rec))
	}
	return docs, nil
}

// ProviderLink converts a provider record into a links resource.
func ProviderLink(rec providers.Record) entries.Resource {
	attrs := make(map[string]any, len(rec))
	for k, v := range rec {
		switch k {
		case "id", "type", "_id":
			continue
		}
		attrs[k] = v
	}
	if _, ok := attrs["link_type"]; !ok {
		attrs["link_type"] = "external"
	}
	return entries.Resource{
		ID:         rec.ID(),
		Type:       entries.TypeLinks,
		Attributes: attrs,
	}
}
