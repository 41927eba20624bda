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

// Package ycharts implements a client for the YCharts REST API, version 3.
//
// Official documentation is at https://ycharts.com/api .
//
// The API serves three security collections: companies, indicators and mutual
// funds. Each collection supports the info, points and series endpoints, and
// companies additionally support the dividends, splits and spinoffs resource
// lists. All the responses are JSON objects, which this package returns as
// generic map[string]interface{} values without modeling the vendor schema.
//
// A Client is created once with the API key and reused for all the requests:
//
//	c := ycharts.NewClient(key)
//	res, err := c.Companies().GetInfo(ctx, []string{"AAPL"}, []string{"name"})
//
// Alternatively, the client can be injected into a context with UseClient, and
// the facades obtained with Companies(ctx), Indicators(ctx) and
// MutualFunds(ctx).
//
// All the failures are reported as *Error values with a Kind, which can be
// checked using KindOf or errors.Is against the Err* sentinels.
package ycharts
