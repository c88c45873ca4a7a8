package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/fab/internal/adapters/telemetry"
	"go.trai.ch/fab/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startedSpan(t *testing.T) sdktrace.ReadWriteSpan {
	t.Helper()
	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "vendor kc705@nist_clock")
	rwSpan, ok := span.(sdktrace.ReadWriteSpan)
	require.True(t, ok)
	return rwSpan
}

func TestBridge_OnStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	renderer.EXPECT().
		OnStageStart(gomock.Any(), "", "vendor kc705@nist_clock", gomock.Any()).
		Times(1)

	span := startedSpan(t)
	defer span.End()

	// The parent context carries no span, so the stage reports as a root.
	bridge.OnStart(context.Background(), span)
}

func TestBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	renderer.EXPECT().OnStageComplete(gomock.Any(), gomock.Any(), nil).Times(1)

	span := startedSpan(t)
	span.End()

	bridge.OnEnd(span)
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	var got error
	renderer.EXPECT().
		OnStageComplete(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ any, err error) { got = err }).
		Times(1)

	span := startedSpan(t)
	span.SetStatus(codes.Error, "timing constraints are not met")
	span.End()

	bridge.OnEnd(span)

	require.EqualError(t, got, "timing constraints are not met")
}

func TestBridge_NilRenderer(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	span := startedSpan(t)
	bridge.OnStart(context.Background(), span)
	span.End()
	bridge.OnEnd(span)

	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}
