// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package build holds version information stamped in at link time via
// -ldflags "-X laptudirm.com/x/messfront/internal/build.Version=...".
package build

// Version is the front end's version string. It defaults to "dev" for
// a plain go build/go run and is overwritten by the release tooling's
// -ldflags for tagged builds.
var Version = "dev"
