package client

import (
	"context"
	"fmt"
	"net/http"
)

// Product types reported by the provisioning manifest
const (
	ProductType360Eye      = "N223"
	ProductTypeHotCoolLink = "455"
	ProductTypeCoolLink    = "475"
)

var (
	vacuumProductTypes = map[string]bool{
		ProductType360Eye: true,
	}
	heatingProductTypes = map[string]bool{
		ProductTypeHotCoolLink: true,
	}
)

// DeviceRecord is one entry of the provisioning manifest
type DeviceRecord struct {
	Serial              string `json:"Serial"`
	Name                string `json:"Name"`
	Version             string `json:"Version"`
	ProductType         string `json:"ProductType"`
	LocalCredentials    string `json:"LocalCredentials"`
	AutoUpdate          bool   `json:"AutoUpdate"`
	NewVersionAvailable bool   `json:"NewVersionAvailable"`
	ScaleUnit           string `json:"ScaleUnit"`
	Active              bool   `json:"Active"`
	ConnectionType      string `json:"ConnectionType"`
}

// Device is a classified handle to one machine linked to the account
type Device interface {
	Serial() string
	Name() string
	ProductType() string
	Record() DeviceRecord
}

type baseDevice struct {
	record DeviceRecord
}

func (d baseDevice) Serial() string       { return d.record.Serial }
func (d baseDevice) Name() string         { return d.record.Name }
func (d baseDevice) ProductType() string  { return d.record.ProductType }
func (d baseDevice) Record() DeviceRecord { return d.record }

// Dyson360Eye is the 360 Eye robot vacuum
type Dyson360Eye struct{ baseDevice }

// DysonPureCoolLink is a connected purifier fan without heating
type DysonPureCoolLink struct{ baseDevice }

// DysonPureHotCoolLink is a connected purifier fan with heating
type DysonPureHotCoolLink struct{ baseDevice }

func is360EyeDevice(record DeviceRecord) bool {
	return vacuumProductTypes[record.ProductType]
}

func isHeatingDevice(record DeviceRecord) bool {
	return heatingProductTypes[record.ProductType]
}

// deviceClassifiers turns manifest records into device handles. Order
// matters: the first matching predicate wins and the last entry is the
// unconditional fallback, so the vacuum check shadows the heating check.
var deviceClassifiers = []struct {
	match func(DeviceRecord) bool
	build func(DeviceRecord) Device
}{
	{is360EyeDevice, func(r DeviceRecord) Device { return &Dyson360Eye{baseDevice{r}} }},
	{isHeatingDevice, func(r DeviceRecord) Device { return &DysonPureHotCoolLink{baseDevice{r}} }},
	{func(DeviceRecord) bool { return true }, func(r DeviceRecord) Device { return &DysonPureCoolLink{baseDevice{r}} }},
}

func classifyDevice(record DeviceRecord) Device {
	for _, c := range deviceClassifiers {
		if c.match(record) {
			return c.build(record)
		}
	}
	// unreachable, the fallback always matches
	return nil
}

// Devices returns all devices linked to the account, preserving manifest
// order. The session must be logged in; an unauthenticated call returns
// ErrNotLoggedIn rather than an empty list.
func (a *Account) Devices(ctx context.Context) ([]Device, error) {
	if !a.logged {
		return nil, ErrNotLoggedIn
	}

	var records []DeviceRecord
	if err := a.doJSON(ctx, http.MethodGet, "/v1/provisioningservice/manifest", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch device manifest: %w", err)
	}

	devices := make([]Device, 0, len(records))
	for _, record := range records {
		devices = append(devices, classifyDevice(record))
	}

	return devices, nil
}
