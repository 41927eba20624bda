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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stockparfait/logging"
	"github.com/stockparfait/testutil"
	"github.com/stockparfait/ycharts-go/ycharts"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_ycharts")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("parseFlags", t, func() {
		Convey("all flags", func() {
			flags, err := parseFlags([]string{
				"-config", "path/to/config", "-log-level", "warning",
				"-workers", "3", "-insecure"})
			So(err, ShouldBeNil)
			So(flags.Config, ShouldEqual, "path/to/config")
			So(flags.LogLevel, ShouldEqual, logging.Warning)
			So(flags.Workers, ShouldEqual, 3)
			So(flags.Insecure, ShouldBeTrue)
		})

		Convey("defaults", func() {
			flags, err := parseFlags([]string{})
			So(err, ShouldBeNil)
			So(filepath.Base(flags.Config), ShouldEqual, "config.toml")
			So(flags.LogLevel, ShouldEqual, logging.Info)
			So(flags.Workers, ShouldBeGreaterThan, 0)
			So(flags.Insecure, ShouldBeFalse)
		})

		Convey("bad workers", func() {
			_, err := parseFlags([]string{"-workers", "0"})
			So(err, ShouldNotBeNil)
		})
	})

	Convey("parseConfig", t, func() {
		configFile := filepath.Join(tmpdir, "config.toml")

		Convey("missing file prints a sample", func() {
			_, err := parseConfig(filepath.Join(tmpdir, "nonexistent.toml"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "Please create config file")
		})

		Convey("valid config", func() {
			So(testutil.WriteFile(configFile, `
key = "secret"

[[query]]
name = "price"
collection = "companies"
endpoint = "series"
ids = ["AAPL", "MSFT"]
fields = ["price"]
start = "2020-01-01"
end = "2020-02-01"

[[query]]
name = "gdp"
collection = "indicators"
endpoint = "points"
ids = ["I:USGDP"]
`), ShouldBeNil)
			c, err := parseConfig(configFile)
			So(err, ShouldBeNil)
			So(c.Key, ShouldEqual, "secret")
			So(len(c.Queries), ShouldEqual, 2)
			So(c.Queries[0].IDs, ShouldResemble, []string{"AAPL", "MSFT"})
			So(c.Queries[0].start, ShouldResemble, ycharts.NewDate(2020, 1, 1))
			So(c.Queries[0].end, ShouldResemble, ycharts.NewDate(2020, 2, 1))
			So(c.Queries[1].date.IsZero(), ShouldBeTrue)
		})

		Convey("duplicate names", func() {
			So(testutil.WriteFile(configFile, `
key = "secret"
[[query]]
name = "a"
collection = "companies"
endpoint = "info"
[[query]]
name = "a"
collection = "companies"
endpoint = "info"
`), ShouldBeNil)
			_, err := parseConfig(configFile)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "duplicate")
		})
	})

	Convey("Query.Validate", t, func() {
		q := Query{Name: "q", Collection: "companies", Endpoint: "dividends"}
		So(q.Validate(), ShouldBeNil)

		q = Query{Name: "q", Collection: "indicators", Endpoint: "dividends"}
		So(q.Validate(), ShouldNotBeNil)

		q = Query{Name: "q", Collection: "bonds", Endpoint: "info"}
		So(q.Validate(), ShouldNotBeNil)

		q = Query{Name: "q", Collection: "companies", Endpoint: "history"}
		So(q.Validate(), ShouldNotBeNil)

		q = Query{Collection: "companies", Endpoint: "info"}
		So(q.Validate(), ShouldNotBeNil)

		q = Query{Name: "q", Collection: "companies", Endpoint: "series", Start: "01/01/2020"}
		So(q.Validate(), ShouldNotBeNil)

		q = Query{Name: "q", Collection: "companies", Endpoint: "series",
			Start: "2020-02-01", End: "2020-01-01"}
		So(q.Validate(), ShouldNotBeNil)
	})

	Convey("run", t, func() {
		ctx := context.Background()
		configFile := filepath.Join(tmpdir, "run.toml")

		Convey("single query against a test server", func() {
			server := testutil.NewTestServer()
			defer server.Close()
			server.ResponseBody = []string{`{"AAPL": {"price": 101.5}}`}
			ycharts.URL = server.URL() + "/api/v3"

			So(testutil.WriteFile(configFile, `
key = "secret"
[[query]]
name = "apple"
collection = "companies"
endpoint = "info"
ids = ["AAPL"]
fields = ["price"]
`), ShouldBeNil)
			flags, err := parseFlags([]string{"-config", configFile})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(run(ctx, flags, &buf), ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/api/v3/companies/AAPL/info/price")
			So(testutil.JSON(buf.String()), ShouldResemble, testutil.JSON(
				`{"apple": {"AAPL": {"price": 101.5}}}`))
		})

		Convey("failed queries are reported", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/v3/indicators/I:USGDP/points":
					w.Write([]byte(`{"I:USGDP": {"value": 1}}`))
				default:
					w.WriteHeader(http.StatusForbidden)
				}
			}))
			defer server.Close()
			ycharts.URL = server.URL + "/api/v3"

			So(testutil.WriteFile(configFile, `
key = "secret"
[[query]]
name = "gdp"
collection = "indicators"
endpoint = "points"
ids = ["I:USGDP"]

[[query]]
name = "fund"
collection = "mutual_funds"
endpoint = "series"
ids = ["VFIAX"]
fields = ["nav"]
`), ShouldBeNil)
			flags, err := parseFlags([]string{"-config", configFile, "-workers", "2"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(run(ctx, flags, &buf), ShouldBeNil)

			var res map[string]map[string]interface{}
			So(json.Unmarshal(buf.Bytes(), &res), ShouldBeNil)
			So(res["gdp"], ShouldResemble, map[string]interface{}{
				"I:USGDP": map[string]interface{}{"value": 1.0},
			})
			So(res["fund"]["error"], ShouldContainSubstring, "InsufficientAccessError")
		})

		Convey("more queries than workers", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"path": "` + r.URL.Path + `"}`))
			}))
			defer server.Close()
			ycharts.URL = server.URL + "/api/v3"

			So(testutil.WriteFile(configFile, `
key = "secret"
[[query]]
name = "a"
collection = "companies"
endpoint = "splits"
ids = ["AAPL"]

[[query]]
name = "b"
collection = "companies"
endpoint = "spinoffs"
ids = ["IBM"]

[[query]]
name = "c"
collection = "mutual_funds"
endpoint = "info"
ids = ["VFIAX"]
fields = ["name"]
`), ShouldBeNil)
			flags, err := parseFlags([]string{"-config", configFile, "-workers", "1"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(run(ctx, flags, &buf), ShouldBeNil)
			So(testutil.JSON(buf.String()), ShouldResemble, testutil.JSON(`{
  "a": {"path": "/api/v3/companies/AAPL/splits"},
  "b": {"path": "/api/v3/companies/IBM/spinoffs"},
  "c": {"path": "/api/v3/mutual_funds/VFIAX/info/name"}
}`))
		})

		Convey("missing key fails every query", func() {
			So(testutil.WriteFile(configFile, `
[[query]]
name = "apple"
collection = "companies"
endpoint = "info"
ids = ["AAPL"]
fields = ["name"]
`), ShouldBeNil)
			flags, err := parseFlags([]string{"-config", configFile})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(run(ctx, flags, &buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "API key has not been provided")
		})
	})
}
