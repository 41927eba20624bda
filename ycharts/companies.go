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

import "context"

// CompanyClient is the facade for the companies collection.
type CompanyClient struct {
	client *Client
}

// Companies returns the companies facade of the client in the context.
func Companies(ctx context.Context) CompanyClient {
	return GetClient(ctx).Companies()
}

// GetInfo requests the info fields of the companies.
func (f CompanyClient) GetInfo(ctx context.Context, symbols, fields []string) (map[string]interface{}, error) {
	r, err := InfoRequest(CompaniesCollection, symbols, fields)
	return execute(ctx, f.client, r, err)
}

// GetPoints requests the metric values as of the date, or the latest values
// when the date is zero.
func (f CompanyClient) GetPoints(ctx context.Context, symbols, metrics []string, date Date) (map[string]interface{}, error) {
	r, err := PointsRequest(CompaniesCollection, symbols, metrics, date)
	return execute(ctx, f.client, r, err)
}

// GetSeries requests the metric values in the [start, end] range. Either date
// may be zero.
func (f CompanyClient) GetSeries(ctx context.Context, symbols, metrics []string, start, end Date) (map[string]interface{}, error) {
	r, err := SeriesRequest(CompaniesCollection, symbols, metrics, start, end)
	return execute(ctx, f.client, r, err)
}

// GetDividends requests the dividend records in the [start, end] range.
func (f CompanyClient) GetDividends(ctx context.Context, symbols []string, start, end Date) (map[string]interface{}, error) {
	r, err := ResourceRequest(CompaniesCollection, symbols, DividendsResource, start, end)
	return execute(ctx, f.client, r, err)
}

// GetStockSplits requests the stock split records in the [start, end] range.
func (f CompanyClient) GetStockSplits(ctx context.Context, symbols []string, start, end Date) (map[string]interface{}, error) {
	r, err := ResourceRequest(CompaniesCollection, symbols, SplitsResource, start, end)
	return execute(ctx, f.client, r, err)
}

// GetStockSpinoffs requests the spinoff records in the [start, end] range.
func (f CompanyClient) GetStockSpinoffs(ctx context.Context, symbols []string, start, end Date) (map[string]interface{}, error) {
	r, err := ResourceRequest(CompaniesCollection, symbols, SpinoffsResource, start, end)
	return execute(ctx, f.client, r, err)
}
