/*
Package json encodes forget requests as JSON documents so they can be
stored in queues backed by external services.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/queue"
)

/*
TaskEncodeDecoder is an interface for objects
that allow encoding tasks as slices of bytes and
decoding them back to tasks. It is used to
serialize tasks into a representation to store on
redis.
*/
type TaskEncodeDecoder interface {

	//Encode receives a *queue.Task
	// and returns a slice of bytes with the task encoded or an
	//error if the encoding could not be performed for
	//some reason. Its counterpart is Decode.
	Encode(context.Context, *queue.Task) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *queue.Task decoded from the slice of bytes
	//or an error if the decoding could not be performed
	//for some reason.
	Decode(context.Context, []byte) (*queue.Task, error)
}

type jsonEncodeDecoder struct{}

type jsonTask struct {
	ID     string             `json:"id"`
	Values map[string]float64 `json:"values"`
	Label  *int               `json:"label"`
}

// New returns a TaskEncodeDecoder encoding tasks as JSON objects with the
// task id, the values of the row to forget and its label.
func New() TaskEncodeDecoder {
	return &jsonEncodeDecoder{}
}

func (jed *jsonEncodeDecoder) Encode(ctx context.Context, t *queue.Task) ([]byte, error) {
	if t.Row == nil {
		return nil, fmt.Errorf("encoding task %s as json: task has no row", t.ID)
	}
	label := t.Row.Label()
	jt := &jsonTask{ID: t.ID, Values: t.Row.Values(), Label: &label}
	data, err := json.Marshal(jt)
	if err != nil {
		return nil, fmt.Errorf("encoding task %s as json: %v", t.ID, err)
	}
	return data, nil
}

func (jed *jsonEncodeDecoder) Decode(ctx context.Context, data []byte) (*queue.Task, error) {
	jt := &jsonTask{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, fmt.Errorf("decoding task from json: %v", err)
	}
	if jt.ID == "" {
		return nil, fmt.Errorf("decoding json task: missing id")
	}
	if jt.Label == nil {
		return nil, fmt.Errorf("decoding json task %s: missing label", jt.ID)
	}
	r, err := dataset.NewRow(jt.Values, *jt.Label)
	if err != nil {
		return nil, fmt.Errorf("decoding json task %s: %v", jt.ID, err)
	}
	return &queue.Task{ID: jt.ID, Row: r}, nil
}
