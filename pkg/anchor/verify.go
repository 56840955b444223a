package anchor

import (
	"context"
)

// VehicleCertResult is the on-chain state of a vehicle access certificate.
type VehicleCertResult struct {
	Valid        bool   `json:"valid"`
	Plate        string `json:"plate"`
	OwnerDID     string `json:"owner_did"`
	VehicleClass string `json:"vehicle_class"`
	Active       bool   `json:"active"`
	Reason       string `json:"reason,omitempty"`
}

// CargoManifestResult is the on-chain state of a supply-chain cargo manifest.
type CargoManifestResult struct {
	Valid          bool   `json:"valid"`
	ManifestID     string `json:"manifest_id"`
	CargoType      string `json:"cargo_type"`
	Shipper        string `json:"shipper"`
	FDAPriorNotice string `json:"fda_prior_notice"`
	Reason         string `json:"reason,omitempty"`
}

type objectContent struct {
	DataType string                 `json:"dataType"`
	Fields   map[string]interface{} `json:"fields"`
}

type objectResult struct {
	Data *struct {
		Content *objectContent `json:"content"`
	} `json:"data"`
}

func (c *Client) getObjectFields(ctx context.Context, objectID string) (map[string]interface{}, bool) {
	var result objectResult
	err := c.Call(ctx, "iota_getObject", []interface{}{
		objectID,
		map[string]interface{}{"showContent": true},
	}, &result)
	if err != nil || result.Data == nil || result.Data.Content == nil || result.Data.Content.DataType != "moveObject" {
		return nil, false
	}
	return result.Data.Content.Fields, true
}

func fieldString(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}

func fieldBool(fields map[string]interface{}, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

// VerifyVehicleCert reads a vehicle certificate object from the ledger and
// reports whether it is live. Lookup failures degrade to an invalid result
// with reason object_not_found rather than an error; a missing certificate
// and an unreadable one are the same compliance fact.
func VerifyVehicleCert(ctx context.Context, c *Client, objectID string) VehicleCertResult {
	fields, ok := c.getObjectFields(ctx, objectID)
	if !ok {
		return VehicleCertResult{Reason: "object_not_found"}
	}

	result := VehicleCertResult{
		Plate:        fieldString(fields, "plate"),
		OwnerDID:     fieldString(fields, "owner_did"),
		VehicleClass: fieldString(fields, "vehicle_class"),
		Active:       fieldBool(fields, "active"),
	}

	if !result.Active {
		result.Reason = "certificate_revoked"
		return result
	}

	result.Valid = true
	return result
}

// VerifyCargoManifest reads a cargo manifest object from the ledger and
// checks its custody flags in fixed order; the first failing flag wins.
func VerifyCargoManifest(ctx context.Context, c *Client, objectID string) CargoManifestResult {
	fields, ok := c.getObjectFields(ctx, objectID)
	if !ok {
		return CargoManifestResult{Reason: "object_not_found"}
	}

	result := CargoManifestResult{
		ManifestID:     fieldString(fields, "manifest_id"),
		CargoType:      fieldString(fields, "cargo_type"),
		Shipper:        fieldString(fields, "shipper"),
		FDAPriorNotice: fieldString(fields, "fda_prior_notice"),
	}

	switch {
	case !fieldBool(fields, "active"):
		result.Reason = "manifest_revoked"
	case !fieldBool(fields, "temperature_ok"):
		result.Reason = "cold_chain_failed"
	case !fieldBool(fields, "seal_intact"):
		result.Reason = "seal_broken"
	case !fieldBool(fields, "xray_cleared"):
		result.Reason = "xray_failed"
	case fieldBool(fields, "hazmat"):
		result.Reason = "hazmat_detected"
	default:
		result.Valid = true
	}

	return result
}
