package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/optimade/optimade-go/internal/server/cache"
	"github.com/optimade/optimade-go/internal/server/response"
	"github.com/optimade/optimade-go/pkg/entries"
	"github.com/optimade/optimade-go/pkg/errors"
	"github.com/optimade/optimade-go/pkg/logging"
	"github.com/optimade/optimade-go/pkg/params"
)

// page is a cached listing result.
type page struct {
	result   entries.Result
	included []entries.Resource
}

// HandleListEntries returns the handler for GET /{entry}.
func (h *Handlers) HandleListEntries(entryType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(logging.WithEntryType(r.Context(), entryType))
		p, err := h.app.Parser().ParseListing(r.URL.Query())
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}
		if err := h.checkListing(p); err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		coll, err := h.collection(entryType)
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		key := cache.Key(r)
		var pg page
		if cached, found := h.cache.Get(key); found {
			pg = cached.(page)
		} else {
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
			included, err := h.included(r, result.Data, &p.SingleParams)
			if err != nil {
				response.ErrorFromType(w, r, err)
				return
			}
			pg = page{result: result, included: included}
			h.cache.Set(key, pg)
		}

		links, err := h.pageLinks(r, offset(p), len(pg.result.Data), pg.result.MoreAvailable)
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		available := pg.result.Available
		response.OK(w, response.Document{
			Data:     pg.result.Data,
			Meta:     h.meta(r, len(pg.result.Data), &available, pg.result.MoreAvailable, unrecognizedWarnings(p.Unrecognized())),
			Links:    links,
			Included: asAny(pg.included),
		})
	}
}

// HandleGetEntry returns the handler for GET /{entry}/{id}.
func (h *Handlers) HandleGetEntry(entryType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(logging.WithEntryType(r.Context(), entryType))
		p, err := h.app.Parser().ParseSingle(r.URL.Query())
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}
		if err := checkFormat(p); err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		coll, err := h.collection(entryType)
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		id := r.PathValue("id")
		doc, err := coll.Get(r.Context(), id)
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		if entryType == entries.TypeTrajectories {
			if doc, err = applyFrames(p, doc); err != nil {
				response.ErrorFromType(w, r, err)
				return
			}
		}

		included, err := h.included(r, []entries.Resource{doc}, p)
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		one := 1
		response.OK(w, response.Document{
			Data:     entries.Project(doc, p.Fields()),
			Meta:     h.meta(r, 1, &one, false, unrecognizedWarnings(p.Unrecognized())),
			Included: asAny(included),
		})
	}
}

func (h *Handlers) collection(entryType string) (entries.Collection, error) {
	reg, err := h.app.Registry()
	if err != nil {
		return nil, err
	}
	coll, ok := reg.Get(entryType)
	if !ok {
		return nil, errors.NewNotFoundError("entry type", entryType)
	}
	return coll, nil
}

func (h *Handlers) included(r *http.Request, docs []entries.Resource, p *params.SingleParams) ([]entries.Resource, error) {
	paths, _ := p.IncludeSet()
	if len(paths) == 0 {
		return nil, nil
	}
	reg, err := h.app.Registry()
	if err != nil {
		return nil, err
	}
	return entries.IncludedResources(r.Context(), reg, docs, paths)
}

// pageLinks builds links.next when more entries follow this page. An empty
// page gets no next link, as it would point back at itself.
func (h *Handlers) pageLinks(r *http.Request, start, returned int, more bool) (*response.Links, error) {
	links := &response.Links{}
	if !more || returned == 0 {
		return links, nil
	}
	base, err := h.baseURL(r)
	if err != nil {
		return nil, err
	}

	q := r.URL.Query()
	q.Del(params.FieldPageNumber)
	q.Set(params.FieldPageOffset, strconv.Itoa(start+returned))
	next := base + h.relativePath(r.URL.Path) + "?" + q.Encode()
	links.Next = &next
	return links, nil
}

// relativePath strips the configured root path from an absolute request path.
func (h *Handlers) relativePath(path string) string {
	root := strings.TrimRight(h.config.RootPath, "/")
	if root != "" && !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	return strings.TrimPrefix(path, root)
}

// applyFrames validates the frame window of a trajectory request and cuts the
// per-frame properties down to it.
func applyFrames(p *params.SingleParams, doc entries.Resource) (entries.Resource, error) {
	n, ok := doc.Attributes["nframes"].(float64)
	if !ok {
		return doc, nil
	}
	window, err := p.FrameWindow(int(n))
	if err != nil {
		return entries.Resource{}, err
	}
	return entries.SliceFrames(doc, window), nil
}

func asAny(docs []entries.Resource) []any {
	if len(docs) == 0 {
		return nil
	}
	out := make([]any, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out
}
