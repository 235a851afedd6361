package script

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/pmkol/slist/mlog"
	"github.com/pmkol/slist/pkg/list"
)

const (
	OpAddFirst    = "add_first"
	OpAddLast     = "add_last"
	OpAddBefore   = "add_before"
	OpAddAfter    = "add_after"
	OpRemoveFirst = "remove_first"
	OpRemoveLast  = "remove_last"
	OpRemove      = "remove"
	OpRemoveNode  = "remove_node"
	OpFind        = "find"
	OpFindLast    = "find_last"
	OpContains    = "contains"
	OpClear       = "clear"
	OpClone       = "clone"
	OpMove        = "move"
)

const (
	TargetFirst    = "first"
	TargetLast     = "last"
	TargetFind     = "find"
	TargetFindLast = "find_last"
	TargetNil      = "nil"
)

const (
	ResultOK              = "ok"
	ResultInvalidArgument = "invalid_argument"
	ResultInvalidState    = "invalid_state"
)

// Script is a sequence of list operations replayed on a list built
// from Init.
type Script struct {
	// Type of the list elements, "int" (default) or "string".
	Type string   `yaml:"type"`
	Init []string `yaml:"init"`
	Ops  []Op     `yaml:"ops"`

	// Expect is compared with the final list if it is not nil.
	Expect []string `yaml:"expect"`
}

type Op struct {
	Op          string `yaml:"op"`
	Value       string `yaml:"value"`
	Target      string `yaml:"target"`
	TargetValue string `yaml:"target_value"`

	// ExpectErr is the error kind the op must fail with.
	// Empty means the op must succeed.
	ExpectErr string `yaml:"expect_err"`

	// ExpectFound and ExpectIndex check the outcome of find, find_last
	// and contains when set. ExpectIndex is the position of the node
	// returned by find or find_last, -1 if there is none.
	ExpectFound *bool `yaml:"expect_found"`
	ExpectIndex *int  `yaml:"expect_index"`
}

type Result struct {
	Values []string
	Ops    int
	Failed int // ops that failed as expected
}

// Run replays s with a Runner matching s.Type.
func Run(s *Script, logger *zap.Logger, m *Metrics) (*Result, error) {
	switch s.Type {
	case "", "int":
		return NewRunner(strconv.Atoi, logger, m).Run(s)
	case "string":
		return NewRunner(func(str string) (string, error) { return str, nil }, logger, m).Run(s)
	default:
		return nil, fmt.Errorf("unsupported element type %q", s.Type)
	}
}

type Runner[V comparable] struct {
	parse  func(string) (V, error)
	logger *zap.Logger
	m      *Metrics
}

// NewRunner returns a Runner. logger and m can be nil.
func NewRunner[V comparable](parse func(string) (V, error), logger *zap.Logger, m *Metrics) *Runner[V] {
	if logger == nil {
		logger = mlog.Nop()
	}
	return &Runner[V]{parse: parse, logger: logger, m: m}
}

func (r *Runner[V]) Run(s *Script) (*Result, error) {
	values := make([]V, 0, len(s.Init))
	for _, str := range s.Init {
		v, err := r.parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid init value %q, %w", str, err)
		}
		values = append(values, v)
	}
	l := list.From(values...)

	res := new(Result)
	for i := range s.Ops {
		op := &s.Ops[i]
		nl, err := r.apply(l, op)
		kind := errKind(err)
		if kind == "" {
			// not a list error
			return nil, fmt.Errorf("op #%d %s, %w", i, op.Op, err)
		}
		r.m.observe(op.Op, kind)

		if want := expectedKind(op.ExpectErr); kind != want {
			return nil, fmt.Errorf("op #%d %s: want %s, got %s (%v)", i, op.Op, want, kind, err)
		}
		if err != nil {
			res.Failed++
		}
		res.Ops++
		l = nl
		r.logger.Debug("op applied",
			zap.Int("index", i),
			zap.String("op", op.Op),
			zap.String("result", kind),
			zap.Stringer("list", l),
		)
	}
	r.m.setLength(l.Len())

	for _, v := range l.Values() {
		res.Values = append(res.Values, fmt.Sprint(v))
	}
	if s.Expect != nil && !slices.Equal(s.Expect, res.Values) {
		return res, fmt.Errorf("unexpected result %v, want %v", res.Values, s.Expect)
	}
	return res, nil
}

// apply runs op on l. The returned list replaces l, it differs from l
// only for clone and move.
func (r *Runner[V]) apply(l *list.List[V], op *Op) (*list.List[V], error) {
	switch op.Op {
	case OpRemoveFirst:
		return l, l.RemoveFirst()
	case OpRemoveLast:
		return l, l.RemoveLast()
	case OpClear:
		l.Clear()
		return l, nil
	case OpClone:
		return l.Clone(), nil
	case OpMove:
		nl := list.New[V]()
		nl.MoveFrom(l)
		return nl, nil
	case OpRemoveNode:
		target, err := r.target(l, op)
		if err != nil {
			return l, err
		}
		return l, l.RemoveNode(target)
	}

	v, err := r.parse(op.Value)
	if err != nil {
		return l, fmt.Errorf("invalid value %q, %w", op.Value, err)
	}

	switch op.Op {
	case OpAddFirst:
		l.AddFirst(v)
	case OpAddLast:
		l.AddLast(v)
	case OpAddBefore, OpAddAfter:
		target, err := r.target(l, op)
		if err != nil {
			return l, err
		}
		if op.Op == OpAddBefore {
			_, err = l.AddBefore(target, v)
		} else {
			_, err = l.AddAfter(target, v)
		}
		return l, err
	case OpRemove:
		return l, l.Remove(v)
	case OpFind, OpFindLast:
		var n *list.Node[V]
		if op.Op == OpFind {
			n = l.Find(v)
		} else {
			n = l.FindLast(v)
		}
		idx := indexOf(l, n)
		r.logger.Info(op.Op, zap.String("value", op.Value), zap.Int("index", idx))
		return l, checkQuery(op, n != nil, idx)
	case OpContains:
		found := l.Contains(v)
		r.logger.Info(op.Op, zap.String("value", op.Value), zap.Bool("result", found))
		if op.ExpectIndex != nil {
			return l, errors.New("expect_index is not supported by contains")
		}
		return l, checkQuery(op, found, -1)
	default:
		return l, fmt.Errorf("unknown op %q", op.Op)
	}
	return l, nil
}

// target resolves the node selected by op.Target. The node may be nil.
func (r *Runner[V]) target(l *list.List[V], op *Op) (*list.Node[V], error) {
	switch op.Target {
	case TargetFirst:
		return l.First(), nil
	case TargetLast:
		return l.Last(), nil
	case TargetNil:
		return nil, nil
	case TargetFind, TargetFindLast:
		v, err := r.parse(op.TargetValue)
		if err != nil {
			return nil, fmt.Errorf("invalid target value %q, %w", op.TargetValue, err)
		}
		if op.Target == TargetFind {
			return l.Find(v), nil
		}
		return l.FindLast(v), nil
	default:
		return nil, fmt.Errorf("unknown target %q", op.Target)
	}
}

// indexOf returns the position of n in l, or -1.
func indexOf[V comparable](l *list.List[V], n *list.Node[V]) int {
	if n == nil {
		return -1
	}
	i := 0
	for p := l.First(); p != nil; p = p.Next() {
		if p == n {
			return i
		}
		i++
	}
	return -1
}

func checkQuery(op *Op, found bool, idx int) error {
	if op.ExpectFound != nil && *op.ExpectFound != found {
		return fmt.Errorf("value %q: want found %t, got %t", op.Value, *op.ExpectFound, found)
	}
	if op.ExpectIndex != nil && *op.ExpectIndex != idx {
		return fmt.Errorf("value %q: want index %d, got %d", op.Value, *op.ExpectIndex, idx)
	}
	return nil
}

// errKind maps err to a result label. It returns "" if err is not
// a list error.
func errKind(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, list.ErrInvalidArgument):
		return ResultInvalidArgument
	case errors.Is(err, list.ErrInvalidState):
		return ResultInvalidState
	default:
		return ""
	}
}

func expectedKind(s string) string {
	if len(s) == 0 {
		return ResultOK
	}
	return s
}
