package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func manifestServer(t *testing.T, records []DeviceRecord, hits *int) *Account {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/v1/provisioningservice/manifest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(records)
	}))
	t.Cleanup(server.Close)

	account := NewAccount("jane@example.com", "hunter2", "US")
	account.baseURL = server.URL
	return account
}

func TestDevicesNotLoggedIn(t *testing.T) {
	var hits int
	account := manifestServer(t, nil, &hits)

	devices, err := account.Devices(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if devices != nil {
		t.Errorf("expected no devices, got %v", devices)
	}
	if hits != 0 {
		t.Errorf("expected no manifest request, got %d", hits)
	}
}

func TestDevicesClassificationOrder(t *testing.T) {
	records := []DeviceRecord{
		{Serial: "JH1-US-HAA0001A", Name: "Robot", ProductType: ProductType360Eye},
		{Serial: "JH2-EU-HBB0002B", Name: "Heater", ProductType: ProductTypeHotCoolLink},
		{Serial: "JH3-EU-HCC0003C", Name: "Fan", ProductType: ProductTypeCoolLink},
	}

	var hits int
	account := manifestServer(t, records, &hits)
	account.UseAuthenticationToken("token")

	devices, err := account.Devices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(devices) != 3 {
		t.Fatalf("expected 3 devices, got %d", len(devices))
	}

	if _, ok := devices[0].(*Dyson360Eye); !ok {
		t.Errorf("device 0: expected *Dyson360Eye, got %T", devices[0])
	}
	if _, ok := devices[1].(*DysonPureHotCoolLink); !ok {
		t.Errorf("device 1: expected *DysonPureHotCoolLink, got %T", devices[1])
	}
	if _, ok := devices[2].(*DysonPureCoolLink); !ok {
		t.Errorf("device 2: expected *DysonPureCoolLink, got %T", devices[2])
	}

	// Manifest order is preserved
	for i, serial := range []string{"JH1-US-HAA0001A", "JH2-EU-HBB0002B", "JH3-EU-HCC0003C"} {
		if devices[i].Serial() != serial {
			t.Errorf("device %d: serial %q, want %q", i, devices[i].Serial(), serial)
		}
	}
}

func TestDevicesUnknownProductFallsBack(t *testing.T) {
	records := []DeviceRecord{
		{Serial: "JH9-US-HZZ0009Z", Name: "Mystery", ProductType: "999"},
	}

	var hits int
	account := manifestServer(t, records, &hits)
	account.UseAuthenticationToken("token")

	devices, err := account.Devices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := devices[0].(*DysonPureCoolLink); !ok {
		t.Errorf("expected fallback *DysonPureCoolLink, got %T", devices[0])
	}
}

func TestClassifyVacuumBeatsHeating(t *testing.T) {
	// Force one product type to satisfy both predicates; the vacuum
	// check runs first and must win.
	vacuumProductTypes["555"] = true
	heatingProductTypes["555"] = true
	defer delete(vacuumProductTypes, "555")
	defer delete(heatingProductTypes, "555")

	device := classifyDevice(DeviceRecord{Serial: "JH5-US-HDD0005D", ProductType: "555"})
	if _, ok := device.(*Dyson360Eye); !ok {
		t.Errorf("expected *Dyson360Eye, got %T", device)
	}
}

func TestDevicesEmptyManifest(t *testing.T) {
	var hits int
	account := manifestServer(t, []DeviceRecord{}, &hits)
	account.UseAuthenticationToken("token")

	devices, err := account.Devices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("expected no devices, got %d", len(devices))
	}
	if hits != 1 {
		t.Errorf("expected 1 manifest request, got %d", hits)
	}
}

func TestDevicesManifestHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	account := NewAccount("jane@example.com", "hunter2", "US")
	account.baseURL = server.URL
	account.UseAuthenticationToken("token")

	_, err := account.Devices(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.StatusCode)
	}
}

func TestDeviceRecordExposed(t *testing.T) {
	record := DeviceRecord{
		Serial:              "JH1-US-HAA0001A",
		Name:                "Living room",
		Version:             "21.03.08",
		ProductType:         ProductTypeHotCoolLink,
		NewVersionAvailable: true,
		ConnectionType:      "wss",
	}

	device := classifyDevice(record)
	if device.Name() != "Living room" {
		t.Errorf("Name() = %q", device.Name())
	}
	if device.Record() != record {
		t.Errorf("Record() = %+v, want %+v", device.Record(), record)
	}
}
