package tools

import (
	"context"
	"fmt"

	"go-preplan/pkg/formula"
)

// Builtin grid tools with canned line data. Real deployments swap these for
// clients of the dispatch-center APIs; the facade contract is the same.

// SendLimitTool looks up the sending-end transfer limit of a DC line.
type SendLimitTool struct {
	limits map[string]float64
}

func NewSendLimitTool() *SendLimitTool {
	return &SendLimitTool{
		limits: map[string]float64{
			"LineA": 3200.0,
			"LineB": 2800.0,
		},
	}
}

func (t *SendLimitTool) Name() string        { return "query_send_limit" }
func (t *SendLimitTool) Description() string { return "query the sending-end limit of a DC line" }

func (t *SendLimitTool) Invoke(_ context.Context, args map[string]any) Result {
	line, found := args["line"].(string)
	if !found || line == "" {
		return fail(t.Name(), "missing line argument")
	}
	limit, found := t.limits[line]
	if !found {
		limit = 2500.0
	}
	return ok(t.Name(), limit, "MW", fmt.Sprintf("send-limit database %s", line))
}

// RecvLimitTool looks up the receiving-end transfer limit of a DC line.
type RecvLimitTool struct {
	limits map[string]float64
}

func NewRecvLimitTool() *RecvLimitTool {
	return &RecvLimitTool{
		limits: map[string]float64{
			"LineA": 3000.0,
			"LineB": 2600.0,
		},
	}
}

func (t *RecvLimitTool) Name() string        { return "query_recv_limit" }
func (t *RecvLimitTool) Description() string { return "query the receiving-end limit of a DC line" }

func (t *RecvLimitTool) Invoke(_ context.Context, args map[string]any) Result {
	line, found := args["line"].(string)
	if !found || line == "" {
		return fail(t.Name(), "missing line argument")
	}
	limit, found := t.limits[line]
	if !found {
		limit = 2400.0
	}
	return ok(t.Name(), limit, "MW", fmt.Sprintf("recv-limit database %s", line))
}

// DeviceImpact describes which DC line an outaged device affects and on which
// side of the grid it sits.
type DeviceImpact struct {
	DCLine        string   `json:"dc_line"`
	Side          string   `json:"side_info"`
	AffectedLines []string `json:"affected_lines"`
	Description   string   `json:"description"`
}

// DeviceImpactTool resolves a device name to its grid impact.
type DeviceImpactTool struct {
	devices map[string]DeviceImpact
}

func NewDeviceImpactTool() *DeviceImpactTool {
	return &DeviceImpactTool{
		devices: map[string]DeviceImpact{
			"TielineNorth": {
				DCLine:        "LineA",
				Side:          "send",
				AffectedLines: []string{"LineA"},
				Description:   "northern AC tie line feeding the LineA converter station",
			},
			"ConverterEast": {
				DCLine:        "LineB",
				Side:          "receive",
				AffectedLines: []string{"LineB"},
				Description:   "eastern converter station on the LineB receiving end",
			},
		},
	}
}

func (t *DeviceImpactTool) Name() string { return "query_device_impact" }
func (t *DeviceImpactTool) Description() string {
	return "resolve a device outage to affected DC lines"
}

func (t *DeviceImpactTool) Invoke(_ context.Context, args map[string]any) Result {
	device, found := args["device"].(string)
	if !found || device == "" {
		return fail(t.Name(), "missing device argument")
	}
	impact, found := t.devices[device]
	if !found {
		return fail(t.Name(), "unknown device: %s", device)
	}
	return ok(t.Name(), impact, "", fmt.Sprintf("device impact database %s", device))
}

// MinValueTool returns the smallest numeric argument it is given.
type MinValueTool struct{}

func (MinValueTool) Name() string        { return "compute_min_value" }
func (MinValueTool) Description() string { return "minimum of the numeric arguments" }

func (t MinValueTool) Invoke(_ context.Context, args map[string]any) Result {
	var values []float64
	for key, raw := range args {
		v, err := formula.Coerce(key, raw)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return fail(t.Name(), "no numeric arguments")
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return ok(t.Name(), m, "", "arithmetic")
}

// RegisterGridTools wires every builtin grid tool into the registry.
func RegisterGridTools(r *Registry) {
	r.Register(NewSendLimitTool())
	r.Register(NewRecvLimitTool())
	r.Register(NewDeviceImpactTool())
	r.Register(MinValueTool{})
}
