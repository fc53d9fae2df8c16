package solver

import (
	"context"
	"fmt"

	"github.com/lukpank/go-glpk/glpk"

	appErrors "github.com/noah-isme/school-scheduler/pkg/errors"
)

// GLPKBackend solves the model with the GNU Linear Programming Kit. The
// binding exposes no wall-clock or gap knobs, so Options are not read. The
// context is checked once before the solve starts; a solve already running
// is not interrupted when the deadline passes. Gap is 0 whenever optimality
// was proven and -1 when only a feasible incumbent was found.
type GLPKBackend struct{}

func (b *GLPKBackend) Name() string { return "glpk" }

func (b *GLPKBackend) Solve(ctx context.Context, m *Model, _ Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSolverFailed.Code, appErrors.ExitSolverFailure,
			"cancelled before solve")
	}

	lp := glpk.New()
	defer lp.Delete()
	lp.SetProbName("student-assignment")
	lp.SetObjDir(glpk.ObjDir(glpk.MAX))

	lp.AddCols(len(m.Vars))
	for i, v := range m.Vars {
		col := i + 1
		lp.SetColName(col, fmt.Sprintf("x_%s_%s", v.Student, v.Section))
		lp.SetColKind(col, glpk.VarType(glpk.BV))
		lp.SetObjCoef(col, v.Weight)
	}

	lp.AddRows(len(m.Cons))
	for i, con := range m.Cons {
		row := i + 1
		lp.SetRowName(row, con.Name)
		lp.SetRowBnds(row, glpk.BndsType(glpk.UP), 0, float64(con.Bound))
		indices := make([]int32, len(con.Vars))
		coeffs := make([]float64, len(con.Vars))
		for j, vi := range con.Vars {
			indices[j] = int32(vi + 1)
			coeffs[j] = 1.0
		}
		lp.SetMatRow(row, indices, coeffs)
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MsgLev(glpk.MSG_ERR))
	if err := lp.Simplex(smcp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSolverFailed.Code, appErrors.ExitSolverFailure,
			"simplex relaxation failed")
	}

	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetMsgLev(glpk.MsgLev(glpk.MSG_ERR))
	if err := lp.Intopt(iocp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSolverFailed.Code, appErrors.ExitSolverFailure,
			"integer optimization failed")
	}

	status := lp.MipStatus()
	if status != glpk.OPT && status != glpk.FEAS {
		return nil, appErrors.Clone(appErrors.ErrSolverFailed,
			fmt.Sprintf("solver returned status %v", status))
	}

	result := &Result{
		Selected:  make([]bool, len(m.Vars)),
		Objective: lp.MipObjVal(),
		Optimal:   status == glpk.OPT,
	}
	for i := range m.Vars {
		if lp.MipColVal(i+1) > 0.5 {
			result.Selected[i] = true
		}
	}
	if !result.Optimal {
		// Incumbent accepted; the true gap is unknown without solver support.
		result.Gap = -1
	}
	return result, nil
}
