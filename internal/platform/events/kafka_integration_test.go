//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/devfelipenunes/zolvency-contracts/internal/platform/events"
	"github.com/devfelipenunes/zolvency-contracts/pkg/testutil/containers"
)

func TestKafkaSink_PublishRoundTrip(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sink, err := events.NewKafkaSink(ctx, rp.Brokers, "identity.events")
	require.NoError(t, err)
	defer sink.Close()

	want := events.Event{
		Type:          events.TypeIdentityMinted,
		Account:       "GALICE",
		TokenID:       1,
		Username:      "alice",
		Contributions: 250,
		Tier:          "Pro",
		Timestamp:     time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, sink.Publish(ctx, want))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Brokers...),
		kgo.ConsumeTopics("identity.events"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, []byte("GALICE"), records[0].Key)

	var got events.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, want, got)
}

func TestKafkaSink_CreateExistingTopic(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	first, err := events.NewKafkaSink(ctx, rp.Brokers, "identity.events")
	require.NoError(t, err)
	defer first.Close()

	// A second sink against the same topic must not fail on create.
	second, err := events.NewKafkaSink(ctx, rp.Brokers, "identity.events")
	require.NoError(t, err)
	defer second.Close()
}
