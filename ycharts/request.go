// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ycharts

import (
	"net/url"
	"strings"

	"golang.org/x/exp/slices"
)

// Collection is the security collection, which is the first element of the
// request path.
type Collection string

// Values of Collection.
const (
	CompaniesCollection   = Collection("companies")
	IndicatorsCollection  = Collection("indicators")
	MutualFundsCollection = Collection("mutual_funds")
)

// Endpoint names.
const (
	InfoEndpoint      = "info"
	PointsEndpoint    = "points"
	SeriesEndpoint    = "series"
	DividendsResource = "dividends"
	SplitsResource    = "splits"
	SpinoffsResource  = "spinoffs"
)

// Query parameter names.
const (
	dateParam      = "date"
	startDateParam = "start_date"
	endDateParam   = "end_date"
)

// Request is a fully validated API request relative to the base URL. Create it
// with one of the *Request constructors.
type Request struct {
	collection Collection
	ids        []string
	endpoint   string
	secondary  []string         // fields or metrics; nil when not part of the path
	params     []dateParamValue // in the order they were added
}

// dateParamValue is a single date query parameter.
type dateParamValue struct {
	name string
	date Date
}

// newRequest validates the ID list and copies the inputs, so the caller may
// reuse its slices.
func newRequest(c Collection, ids []string, endpoint string) (*Request, error) {
	if len(ids) == 0 {
		return nil, newError(ValidationError, "%s: ids list must contain at least 1 item", c)
	}
	return &Request{
		collection: c,
		ids:        slices.Clone(ids),
		endpoint:   endpoint,
	}, nil
}

// withSecondary sets the required list of fields or metrics.
func (r *Request) withSecondary(name string, list []string) (*Request, error) {
	if len(list) == 0 {
		return nil, newError(ValidationError, "%s: %s list must contain at least 1 item",
			r.collection, name)
	}
	r.secondary = slices.Clone(list)
	return r, nil
}

// withDate adds an optional date parameter. Zero dates are skipped.
func (r *Request) withDate(param string, d Date) *Request {
	if !d.IsZero() {
		r.params = append(r.params, dateParamValue{name: param, date: d})
	}
	return r
}

// InfoRequest builds {collection}/{ids}/info/{fields}.
func InfoRequest(c Collection, ids, fields []string) (*Request, error) {
	r, err := newRequest(c, ids, InfoEndpoint)
	if err != nil {
		return nil, err
	}
	return r.withSecondary("fields", fields)
}

// PointsRequest builds {collection}/{ids}/points/{metrics}?date=D. For the
// indicators collection, metrics must be nil, and the path ends with
// "points".
func PointsRequest(c Collection, ids, metrics []string, date Date) (*Request, error) {
	r, err := newRequest(c, ids, PointsEndpoint)
	if err != nil {
		return nil, err
	}
	if c != IndicatorsCollection || metrics != nil {
		if r, err = r.withSecondary("metrics", metrics); err != nil {
			return nil, err
		}
	}
	return r.withDate(dateParam, date), nil
}

// SeriesRequest builds {collection}/{ids}/series/{metrics} with optional
// start_date and end_date. Metrics follow the same rules as in PointsRequest.
func SeriesRequest(c Collection, ids, metrics []string, start, end Date) (*Request, error) {
	r, err := newRequest(c, ids, SeriesEndpoint)
	if err != nil {
		return nil, err
	}
	if c != IndicatorsCollection || metrics != nil {
		if r, err = r.withSecondary("metrics", metrics); err != nil {
			return nil, err
		}
	}
	return r.withDate(startDateParam, start).withDate(endDateParam, end), nil
}

// ResourceRequest builds {collection}/{ids}/{resource} with optional
// start_date and end_date, e.g. for dividends.
func ResourceRequest(c Collection, ids []string, resource string, start, end Date) (*Request, error) {
	r, err := newRequest(c, ids, resource)
	if err != nil {
		return nil, err
	}
	return r.withDate(startDateParam, start).withDate(endDateParam, end), nil
}

// Values returns the query values for the request. Each call creates a new
// object, so the caller is free to modify it.
func (r *Request) Values() url.Values {
	v := make(url.Values)
	for _, p := range r.params {
		v[p.name] = []string{p.date.String()}
	}
	return v
}

// query encodes the parameters in the order they were added, so start_date
// always precedes end_date. Unlike url.Values.Encode, the keys are not sorted.
func (r *Request) query() string {
	pairs := make([]string, len(r.params))
	for i, p := range r.params {
		pairs[i] = url.QueryEscape(p.name) + "=" + url.QueryEscape(p.date.String())
	}
	return strings.Join(pairs, "&")
}

// Path returns the URL path with the query string to add to the base URL.
// The "?" is omitted when there are no query parameters.
func (r *Request) Path() string {
	parts := []string{string(r.collection), strings.Join(r.ids, ","), r.endpoint}
	if r.secondary != nil {
		parts = append(parts, strings.Join(r.secondary, ","))
	}
	p := strings.Join(parts, "/")
	if len(r.params) > 0 {
		p += "?" + r.query()
	}
	return p
}

// String implements fmt.Stringer.
func (r *Request) String() string {
	return r.Path()
}
