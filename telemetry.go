// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/trace"
)

// Composition and compilation never execute user code, so there is no
// per-Packet span/counter pair to maintain the way vertex.go does for a
// running stream. What is worth tracing is graph construction itself: a
// span per Compose call and a counter of nodes added to a Composition,
// mirroring the shape (if not the volume) of the teacher's instrumentation.
var (
	meter          = global.Meter("flow")
	tracer         = otel.GetTracerProvider().Tracer("flow")
	composeCounter = metric.Must(meter).NewInt64Counter("flow.compose.count")
	nodeCounter    = metric.Must(meter).NewInt64Counter("flow.compose.nodes")
)

func startComposeSpan(ctx context.Context, kind string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "compose", trace.WithAttributes(attribute.String("kind", kind)))
	composeCounter.Add(ctx, 1, attribute.String("kind", kind))
	return ctx, span
}

func recordNode(ctx context.Context, uid string) {
	nodeCounter.Add(ctx, 1, attribute.String("uid", uid))
}
