//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/application"
	routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"
	routeEvents "github.com/Kilat-Pet-Delivery/service-route-planner/internal/events"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/gateway/googlemaps"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/proto/events"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	polyline "github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

var (
	utsc       = routeDomain.Coordinate{Lat: 43.7844, Lng: -79.1864}
	coffeeShop = routeDomain.Coordinate{Lat: 43.7861, Lng: -79.1897}
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	KafkaBrokers []string
	Cleanup      func()
}

// plannerStack holds wired-up planner service components.
type plannerStack struct {
	Service         *application.PlannerService
	Consumer        *routeEvents.RouteRequestConsumer
	CleanupProducer func()
}

// staticExtractor always returns the same plan.
type staticExtractor struct {
	plan routeDomain.TripPlan
}

func (e staticExtractor) Extract(context.Context, string) (*routeDomain.TripPlan, error) {
	plan := e.plan
	return &plan, nil
}

// setupContainers starts a Kafka testcontainer.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, events.TopicRouteEvents, events.TopicRouteRequests)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	}

	return &testInfra{
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// newMapsServer serves the Google Maps endpoints the planner calls for
// "UTSC" and "coffee shop".
func newMapsServer(t *testing.T) *httptest.Server {
	t.Helper()
	loc := func(c routeDomain.Coordinate) map[string]interface{} {
		return map[string]interface{}{"location": map[string]float64{"lat": c.Lat, "lng": c.Lng}}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"status":  "OK",
			"results": []interface{}{map[string]interface{}{"geometry": loc(utsc)}},
		})
	})
	mux.HandleFunc("/maps/api/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("keyword") != "coffee shop" {
			writeJSON(w, map[string]interface{}{"status": "ZERO_RESULTS"})
			return
		}
		writeJSON(w, map[string]interface{}{
			"status": "OK",
			"results": []interface{}{map[string]interface{}{
				"place_id": "coffee", "name": "Tim Hortons", "vicinity": "Military Trail", "geometry": loc(coffeeShop),
			}},
		})
	})
	mux.HandleFunc("/maps/api/place/details/json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"status": "OK",
			"result": map[string]interface{}{
				"opening_hours": map[string]interface{}{"weekday_text": []string{"Monday: Open 24 hours"}},
			},
		})
	})
	mux.HandleFunc("/maps/api/directions/json", func(w http.ResponseWriter, r *http.Request) {
		leg := map[string]interface{}{
			"distance": map[string]interface{}{"text": "0.4 km"},
			"duration": map[string]interface{}{"text": "2 mins"},
			"steps": []interface{}{map[string]interface{}{
				"html_instructions": "Head <b>west</b>",
				"distance":          map[string]interface{}{"text": "0.4 km"},
			}},
		}
		points := polyline.EncodeCoords([][]float64{{utsc.Lat, utsc.Lng}, {coffeeShop.Lat, coffeeShop.Lng}, {utsc.Lat, utsc.Lng}})
		writeJSON(w, map[string]interface{}{
			"status": "OK",
			"routes": []interface{}{map[string]interface{}{
				"overview_polyline": map[string]string{"points": string(points)},
				"legs":              []interface{}{leg, leg},
			}},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// setupPlannerStack wires up the full planner service stack against the maps stub.
func setupPlannerStack(t *testing.T, brokers []string, mapsURL string, plan routeDomain.TripPlan) *plannerStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	maps, err := googlemaps.NewClient(googlemaps.Config{APIKey: "test-key", BaseURL: mapsURL, Timeout: 5 * time.Second}, logger)
	require.NoError(t, err)

	m := metrics.NewPlannerMetrics(prometheus.NewRegistry())
	producer := kafka.NewProducer(brokers, logger)
	plannerSvc := application.NewPlannerService(
		staticExtractor{plan: plan},
		application.NewPointResolver(maps, maps, maps, m, logger),
		application.NewRouteCompiler(maps, m, logger),
		producer,
		m,
		logger,
	)

	groupID := fmt.Sprintf("test-planner-%s", uuid.New().String()[:8])
	consumer := routeEvents.NewRouteRequestConsumer(brokers, groupID, plannerSvc, logger)

	return &plannerStack{
		Service:         plannerSvc,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
