package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
)

// txFile is the json form of a transaction, with byte fields in hex.
type txFile struct {
	Genesis   string `json:"genesis"`
	Timestamp uint64 `json:"timestamp"`
	Operation string `json:"operation"`
	Register  string `json:"register,omitempty"`
}

func toTxFile(tx *ledger.Transaction) txFile {
	return txFile{
		Genesis:   tx.Genesis.String(),
		Timestamp: tx.Timestamp,
		Operation: hex.EncodeToString(tx.Operation),
		Register:  hex.EncodeToString(tx.Register),
	}
}

func (f txFile) transaction() (*ledger.Transaction, error) {
	genesis, err := ledger.HexToAddress(f.Genesis)
	if err != nil {
		return nil, fmt.Errorf("invalid genesis: %w", err)
	}
	op, err := hex.DecodeString(f.Operation)
	if err != nil {
		return nil, fmt.Errorf("invalid operation: %w", err)
	}
	reg, err := hex.DecodeString(f.Register)
	if err != nil {
		return nil, fmt.Errorf("invalid register stream: %w", err)
	}
	return &ledger.Transaction{
		Genesis:   genesis,
		Timestamp: f.Timestamp,
		Operation: op,
		Register:  reg,
	}, nil
}

// readTransactions reads a json array of transactions from path.
func readTransactions(path string) ([]*ledger.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	var files []txFile
	err = json.Unmarshal(data, &files)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	txs := make([]*ledger.Transaction, 0, len(files))
	for i, f := range files {
		tx, err := f.transaction()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func writeTransactions(path string, txs []*ledger.Transaction) error {
	files := make([]txFile, 0, len(txs))
	for _, tx := range txs {
		files = append(files, toTxFile(tx))
	}
	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode transactions: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// registerView is the printable form of a register.
type registerView struct {
	Type      string      `json:"type"`
	Owner     string      `json:"owner"`
	Timestamp uint64      `json:"timestamp"`
	Checksum  string      `json:"checksum"`
	Payload   interface{} `json:"payload"`
}

func newRegisterView(state *register.State) registerView {
	view := registerView{
		Type:      state.Type.String(),
		Owner:     state.Owner.String(),
		Timestamp: state.Timestamp,
		Checksum:  fmt.Sprintf("%016x", state.Checksum()),
		Payload:   hex.EncodeToString(state.Data),
	}
	payload, err := state.Payload()
	if err != nil {
		return view
	}
	switch p := payload.(type) {
	case register.Account, register.Token:
		view.Payload = p
	}
	return view
}

func PrettyPrint(entity interface{}) {
	bytes, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}
