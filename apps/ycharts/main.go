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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/ycharts-go/ycharts"

	toml "github.com/pelletier/go-toml/v2"
)

type Flags struct {
	Config   string // default: ~/.ycharts/config.toml
	LogLevel logging.Level
	Workers  int  // number of queries to run in parallel
	Insecure bool // skip TLS certificate validation
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("ycharts", flag.ExitOnError)
	fs.StringVar(&flags.Config, "config",
		filepath.Join(os.Getenv("HOME"), ".ycharts", "config.toml"),
		"configuration file")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.IntVar(&flags.Workers, "workers", 2*runtime.NumCPU(), "number of parallel queries")
	fs.BoolVar(&flags.Insecure, "insecure", false,
		"skip TLS certificate validation (legacy behavior)")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	if flags.Workers < 1 {
		return nil, errors.Reason("-workers must be positive, got %d", flags.Workers)
	}
	return &flags, nil
}

// Query is a single API call in the config file.
type Query struct {
	Name       string   `toml:"name"`
	Collection string   `toml:"collection"` // companies, indicators, mutual_funds
	Endpoint   string   `toml:"endpoint"`   // info, points, series, dividends, splits, spinoffs
	IDs        []string `toml:"ids"`
	Fields     []string `toml:"fields"` // info fields or metrics
	Date       string   `toml:"date"`   // for points
	Start      string   `toml:"start"`  // for series and resources
	End        string   `toml:"end"`

	date, start, end ycharts.Date
}

// Validate checks the query for consistency and parses its dates.
func (q *Query) Validate() error {
	if q.Name == "" {
		return errors.Reason("query name is required")
	}
	switch ycharts.Collection(q.Collection) {
	case ycharts.CompaniesCollection, ycharts.IndicatorsCollection, ycharts.MutualFundsCollection:
	default:
		return errors.Reason("query %s: unknown collection '%s'", q.Name, q.Collection)
	}
	switch q.Endpoint {
	case ycharts.InfoEndpoint, ycharts.PointsEndpoint, ycharts.SeriesEndpoint:
	case ycharts.DividendsResource, ycharts.SplitsResource, ycharts.SpinoffsResource:
		if ycharts.Collection(q.Collection) != ycharts.CompaniesCollection {
			return errors.Reason("query %s: %s is only available for companies",
				q.Name, q.Endpoint)
		}
	default:
		return errors.Reason("query %s: unknown endpoint '%s'", q.Name, q.Endpoint)
	}
	var err error
	if q.date, err = ycharts.NewDateFromString(q.Date); err != nil {
		return errors.Annotate(err, "query %s: bad date", q.Name)
	}
	if q.start, err = ycharts.NewDateFromString(q.Start); err != nil {
		return errors.Annotate(err, "query %s: bad start", q.Name)
	}
	if q.end, err = ycharts.NewDateFromString(q.End); err != nil {
		return errors.Annotate(err, "query %s: bad end", q.Name)
	}
	if !q.start.IsZero() && !q.end.IsZero() && q.end.Before(q.start) {
		return errors.Reason("query %s: end %s is before start %s", q.Name, q.end, q.start)
	}
	return nil
}

type Config struct {
	Key     string  `toml:"key"` // user key for YCharts
	Queries []Query `toml:"query"`
}

const sampleConfig = `key = "YourSecretYChartsKey"

[[query]]
name = "apple-price"
collection = "companies"
endpoint = "points"
ids = ["AAPL"]
fields = ["price"]
`

func parseConfig(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = errors.Annotate(err,
				"config file '%s' does not exist.\nPlease create config file containing:\n%s",
				filePath, sampleConfig)
			return nil, err
		} else {
			return nil, errors.Annotate(err,
				"cannot check config file for existence: '%s'", filePath)
		}
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	var c Config
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	names := make(map[string]bool)
	for i := range c.Queries {
		q := &c.Queries[i]
		if err := q.Validate(); err != nil {
			return nil, errors.Annotate(err, "invalid query #%d", i+1)
		}
		if names[q.Name] {
			return nil, errors.Reason("duplicate query name '%s'", q.Name)
		}
		names[q.Name] = true
	}
	return &c, nil
}

// runQuery dispatches the query to the corresponding facade method.
func runQuery(ctx context.Context, c *ycharts.Client, q *Query) (map[string]interface{}, error) {
	switch ycharts.Collection(q.Collection) {
	case ycharts.CompaniesCollection:
		f := c.Companies()
		switch q.Endpoint {
		case ycharts.InfoEndpoint:
			return f.GetInfo(ctx, q.IDs, q.Fields)
		case ycharts.PointsEndpoint:
			return f.GetPoints(ctx, q.IDs, q.Fields, q.date)
		case ycharts.SeriesEndpoint:
			return f.GetSeries(ctx, q.IDs, q.Fields, q.start, q.end)
		case ycharts.DividendsResource:
			return f.GetDividends(ctx, q.IDs, q.start, q.end)
		case ycharts.SplitsResource:
			return f.GetStockSplits(ctx, q.IDs, q.start, q.end)
		case ycharts.SpinoffsResource:
			return f.GetStockSpinoffs(ctx, q.IDs, q.start, q.end)
		}
	case ycharts.IndicatorsCollection:
		f := c.Indicators()
		switch q.Endpoint {
		case ycharts.InfoEndpoint:
			return f.GetInfo(ctx, q.IDs, q.Fields)
		case ycharts.PointsEndpoint:
			return f.GetPoints(ctx, q.IDs, q.date)
		case ycharts.SeriesEndpoint:
			return f.GetSeries(ctx, q.IDs, q.start, q.end)
		}
	case ycharts.MutualFundsCollection:
		f := c.MutualFunds()
		switch q.Endpoint {
		case ycharts.InfoEndpoint:
			return f.GetInfo(ctx, q.IDs, q.Fields)
		case ycharts.PointsEndpoint:
			return f.GetPoints(ctx, q.IDs, q.Fields, q.date)
		case ycharts.SeriesEndpoint:
			return f.GetSeries(ctx, q.IDs, q.Fields, q.start, q.end)
		}
	}
	return nil, errors.Reason("unsupported query %s/%s", q.Collection, q.Endpoint)
}

type queryResult struct {
	name  string
	value interface{}
}

// run executes all the queries in the config in parallel and writes a single
// JSON object of {query name -> response} to w. Failed queries are reported as
// {"error": "..."} values.
func run(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := parseConfig(flags.Config)
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	var opts []ycharts.Option
	if flags.Insecure {
		logging.Warningf(ctx, "TLS certificate validation is disabled")
		opts = append(opts, ycharts.InsecureSkipVerify())
	}
	client := ycharts.NewClient(config.Key, opts...)
	ctx, cancel := context.WithCancel(ctx)

	queries := make([]*Query, len(config.Queries))
	for i := range config.Queries {
		queries[i] = &config.Queries[i]
	}
	f := func(q *Query) queryResult {
		res, err := runQuery(ctx, client, q)
		if err != nil {
			logging.Warningf(ctx, "query %s failed: %s", q.Name, err.Error())
			return queryResult{q.Name, map[string]string{"error": err.Error()}}
		}
		logging.Infof(ctx, "query %s: done", q.Name)
		return queryResult{q.Name, res}
	}
	pm := iterator.ParallelMap(ctx, flags.Workers, iterator.FromSlice(queries), f)
	defer func() {
		cancel()
		iterator.Flush(pm)
	}()

	results := iterator.Reduce[queryResult, map[string]interface{}](
		pm, map[string]interface{}{},
		func(r queryResult, m map[string]interface{}) map[string]interface{} {
			m[r.name] = r.value
			return m
		})

	bytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.Annotate(err, "failed to marshal results")
	}
	if _, err := w.Write(append(bytes, '\n')); err != nil {
		return errors.Annotate(err, "failed to write results")
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := run(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
