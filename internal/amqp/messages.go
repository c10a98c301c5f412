package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message kinds routed over the statement queue.
const (
	KindTransactionRecorded = "transaction.recorded"
	KindTransferExecuted    = "transfer.executed"
)

// envelope wraps every statement message so the consumer can dispatch on
// kind before decoding the payload.
type envelope struct {
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransactionRecordedMessage announces a committed transaction. It carries
// only the ID; the statement worker loads the full record from the database,
// so a message can never go stale against a later revision.
type TransactionRecordedMessage struct {
	TransactionID int64 `json:"transaction_id"`
	OwnerID       int64 `json:"owner_id"`
}

// TransferExecutedMessage announces a committed transfer.
type TransferExecutedMessage struct {
	TransferID int64 `json:"transfer_id"`
	OwnerID    int64 `json:"owner_id"`
}

func encodeMessage(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(envelope{
		Kind:      kind,
		Payload:   raw,
		Timestamp: time.Now(),
	})
}

func decodePayload(env *envelope, dst any) error {
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", env.Kind, err)
	}
	return nil
}

func decodeEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return &env, nil
}
