/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package types holds the declarative documents shared by the engine: the
engine configuration, queries, aggregator specs and group keys.

# Configuration

	cfg, err := types.ParseConfig([]byte(`
	logLevel: debug
	scanConfig:
	  parallelism: 8
	  grouping: buffer
	cacheConfig:
	  maxEntries: 4096
	`))

Unset fields keep the values of NewConfig.

# Queries

	q, err := types.ParseQuery([]byte(`{
		"dataSource": "sales",
		"dimensions": ["region"],
		"aggregations": [
			{"type": "longAny", "name": "some_price", "fieldName": "price"},
			{"type": "count", "name": "rows"}
		],
		"context": {"mergeMode": "reaggregate"}
	}`))

Documents may be YAML or JSON. Context switches left empty fall back to the
engine configuration; useCache and populateCache default to true.
*/
package types
