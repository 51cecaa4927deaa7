package store

import (
	"github.com/fxamacker/cbor/v2"
	"unitoken/internal/domain"
)

// Runs are stored as CBOR. Times keep nanoseconds so index keys can be rebuilt.
var (
	runEncMode cbor.EncMode
	runDecMode cbor.DecMode
)

func init() {
	var err error
	runEncMode, err = cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(err)
	}
	runDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

func encodeRun(run domain.Run) ([]byte, error) {
	return runEncMode.Marshal(run)
}

func decodeRun(data []byte) (domain.Run, error) {
	var run domain.Run
	err := runDecMode.Unmarshal(data, &run)
	return run, err
}
