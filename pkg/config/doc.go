// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package config resolves where a classification run reads from and writes to.

	   Defaults (by OS)
	          |
	    config file  (.yaml .yml .hcl .json .toml)
	          |
	   flags / prompt answers
	          |
	ORIGIN_DIRECTORY / DESTINY_DIRECTORY
	          |
	      Validate -> classify.Options

Each layer overrides only the fields it sets. The environment always wins.

🎯 Defaults:
  - windows: C:<HOMEPATH>/Downloads
  - linux:   $HOME
  - other:   no origin, destination "classifier"

The destination default is <origin default>/classifier.

📝 Example (YAML):

	origin: /home/me/Downloads
	destination: /home/me/sorted
	mode: move
	conflict: skip
	ignore:
	  - "*.part"
	  - "*.crdownload"
	state: /home/me/.local/state/extsort/history.json
*/
package config
