// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/trace"
)

// Compilation, like composition, never executes user code - there is no
// per-request span/counter pair the way vertex.go maintains for a
// running machine.Packet. What is worth tracing is the lowering itself:
// a span per Table.Add call (one per Worker visited) and a counter of
// symbols emitted once a Table is drained, mirroring the shape of the
// teacher's per-vertex instrumentation at the granularity that actually
// exists here.
var (
	meter         = global.Meter("flow.compile")
	tracer        = otel.GetTracerProvider().Tracer("flow.compile")
	addCounter    = metric.Must(meter).NewInt64Counter("flow.compile.add")
	symbolCounter = metric.Must(meter).NewInt64Counter("flow.compile.symbols")
)

func startAddSpan(ctx context.Context, uid string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "table.add", trace.WithAttributes(attribute.String("node", uid)))
	addCounter.Add(ctx, 1)
	return ctx, span
}

func recordSymbols(ctx context.Context, n int) {
	symbolCounter.Add(ctx, int64(n))
}
