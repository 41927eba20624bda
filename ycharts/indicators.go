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

// IndicatorClient is the facade for the economic indicators collection.
// Indicators have a single value per date, so points and series take no
// metrics.
type IndicatorClient struct {
	client *Client
}

// Indicators returns the indicators facade of the client in the context.
func Indicators(ctx context.Context) IndicatorClient {
	return GetClient(ctx).Indicators()
}

// GetInfo requests the info fields of the indicators.
func (f IndicatorClient) GetInfo(ctx context.Context, codes, fields []string) (map[string]interface{}, error) {
	r, err := InfoRequest(IndicatorsCollection, codes, fields)
	return execute(ctx, f.client, r, err)
}

// GetPoints requests the indicator values as of the date, or the latest values
// when the date is zero.
func (f IndicatorClient) GetPoints(ctx context.Context, codes []string, date Date) (map[string]interface{}, error) {
	r, err := PointsRequest(IndicatorsCollection, codes, nil, date)
	return execute(ctx, f.client, r, err)
}

// GetSeries requests the indicator values in the [start, end] range.
func (f IndicatorClient) GetSeries(ctx context.Context, codes []string, start, end Date) (map[string]interface{}, error) {
	r, err := SeriesRequest(IndicatorsCollection, codes, nil, start, end)
	return execute(ctx, f.client, r, err)
}
