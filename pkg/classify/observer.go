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

package classify

import (
	"context"

	"github.com/rs/zerolog"
)

// 📣 Event is one line for the logging sink. Outcome is set for per-file
// events, Result for the run summary.
type Event struct {
	Level   zerolog.Level
	Message string
	Mode    Mode
	Outcome *Outcome
	Result  *Result
}

// Observer receives every per-file outcome and the run summary
type Observer interface {
	Record(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) Record(ctx context.Context, ev Event) {
	f(ctx, ev)
}

// NopObserver discards events
type NopObserver struct{}

func (NopObserver) Record(context.Context, Event) {}
