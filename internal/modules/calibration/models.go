package calibration

import "time"

// QubitCalibration holds the synthesized physical parameters of one qubit.
// Times are in microseconds, frequency in GHz.
type QubitCalibration struct {
	ID           int     `json:"id" msgpack:"id"`
	T1           float64 `json:"t1" msgpack:"t1"`
	T2           float64 `json:"t2" msgpack:"t2"`
	ReadoutError float64 `json:"readout_error" msgpack:"readout_error"`
	Frequency    float64 `json:"frequency" msgpack:"frequency"`
	Operational  bool    `json:"operational" msgpack:"operational"`
}

// Snapshot is a full device calibration set reconstructed from an aggregate
// error-per-layered-gate figure.
type Snapshot struct {
	ID            string             `json:"id,omitempty"`
	Backend       string             `json:"backend"`
	Mode          string             `json:"mode"`
	Parameters    Parameters         `json:"parameters"`
	LastUpdate    time.Time          `json:"last_update"`
	Qubits        []QubitCalibration `json:"qubits"`
	GeneralStatus string             `json:"general_status"`
}

// Parameters records the inputs the snapshot was derived from.
type Parameters struct {
	EPLGInput float64 `json:"eplg_input"`
	Model     string  `json:"model"`
}
