package baseline

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/pawnstorm/pawnstorm/pkg/common"
)

func TestBaselineFindsMateInOne(t *testing.T) {
	is := is.New(t)
	b, err := common.NewBoard("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	is.NoErr(err)
	var p = NewPlayer(1, time.Minute)
	is.Equal(p.Think(context.Background(), b, nil).String(), "a1a8")
	is.Equal(b.Ply(), 0)
}

func TestBaselineTakesQueen(t *testing.T) {
	is := is.New(t)
	b, err := common.NewBoard("k7/8/8/3q4/4Q3/8/8/7K w - - 0 1")
	is.NoErr(err)
	var hash = b.Hash()
	is.Equal(NewPlayer(1, time.Minute).Think(context.Background(), b, nil).String(), "e4d5")
	is.Equal(b.Hash(), hash)
}

func TestBaselineNoMoves(t *testing.T) {
	is := is.New(t)
	b, err := common.NewBoard("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	is.NoErr(err)
	is.Equal(NewPlayer(2, time.Second).Think(context.Background(), b, nil), common.MoveEmpty)
}

func TestBaselineReturnsLegalMoveWhenOutOfTime(t *testing.T) {
	is := is.New(t)
	b, err := common.NewBoard(common.InitialPositionFen)
	is.NoErr(err)
	var m = NewPlayer(4, 0).Think(context.Background(), b, nil)
	_, err = b.ParseMove(m.String())
	is.NoErr(err)
}
