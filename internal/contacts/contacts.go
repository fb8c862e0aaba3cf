package contacts

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

const searchReadMask = "names,emailAddresses,nicknames"

// Contact is the best-effort top match for a person name. Resolution is never
// authoritative identity verification.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ClientSource provides an authenticated HTTP client for the People API.
type ClientSource interface {
	HTTPClient(ctx context.Context) (*http.Client, error)
}

// Directory resolves person names to contacts via the Google People API.
type Directory struct {
	source ClientSource

	mu       sync.Mutex
	service  *people.Service
	warmedUp bool
}

// NewDirectory creates a contact directory backed by the shared Google client.
func NewDirectory(source ClientSource) *Directory {
	return &Directory{source: source}
}

func (d *Directory) getService(ctx context.Context) (*people.Service, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.service != nil {
		return d.service, nil
	}

	httpClient, err := d.source.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}

	service, err := people.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create people service: %w", err)
	}

	d.service = service
	return service, nil
}

// SearchContact looks up a person by free-text name and returns the top match,
// or (nil, nil) when the directory has no match. A non-nil error means the
// lookup itself failed, which is not the same as "no such contact".
func (d *Directory) SearchContact(ctx context.Context, query string) (*Contact, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	service, err := d.getService(ctx)
	if err != nil {
		return nil, err
	}

	// The People API requires a warmup search request before it serves real
	// queries; results are unreliable until the cache is primed.
	d.mu.Lock()
	needsWarmup := !d.warmedUp
	d.mu.Unlock()
	if needsWarmup {
		_, _ = service.People.SearchContacts().
			Context(ctx).
			ReadMask(searchReadMask).
			Do()
		time.Sleep(time.Second)
		d.mu.Lock()
		d.warmedUp = true
		d.mu.Unlock()
	}

	response, err := service.People.SearchContacts().
		Context(ctx).
		Query(query).
		ReadMask(searchReadMask).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	return topMatch(response.Results, query), nil
}

// topMatch extracts the first candidate, falling back to the query string when
// the record has no display name. Zero results yield nil without error.
func topMatch(results []*people.SearchResult, query string) *Contact {
	for _, result := range results {
		if result == nil || result.Person == nil {
			continue
		}

		contact := &Contact{Name: query}
		if len(result.Person.Names) > 0 && result.Person.Names[0].DisplayName != "" {
			contact.Name = result.Person.Names[0].DisplayName
		}
		if len(result.Person.EmailAddresses) > 0 {
			contact.Email = result.Person.EmailAddresses[0].Value
		}
		return contact
	}
	return nil
}
