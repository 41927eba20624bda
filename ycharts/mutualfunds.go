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

// MutualFundClient is the facade for the mutual funds collection.
type MutualFundClient struct {
	client *Client
}

// MutualFunds returns the mutual funds facade of the client in the context.
func MutualFunds(ctx context.Context) MutualFundClient {
	return GetClient(ctx).MutualFunds()
}

// GetInfo requests the info fields of the mutual funds.
func (f MutualFundClient) GetInfo(ctx context.Context, symbols, fields []string) (map[string]interface{}, error) {
	r, err := InfoRequest(MutualFundsCollection, symbols, fields)
	return execute(ctx, f.client, r, err)
}

// GetPoints requests the metric values as of the date, or the latest values
// when the date is zero.
func (f MutualFundClient) GetPoints(ctx context.Context, symbols, metrics []string, date Date) (map[string]interface{}, error) {
	r, err := PointsRequest(MutualFundsCollection, symbols, metrics, date)
	return execute(ctx, f.client, r, err)
}

// GetSeries requests the metric values in the [start, end] range.
func (f MutualFundClient) GetSeries(ctx context.Context, symbols, metrics []string, start, end Date) (map[string]interface{}, error) {
	r, err := SeriesRequest(MutualFundsCollection, symbols, metrics, start, end)
	return execute(ctx, f.client, r, err)
}
