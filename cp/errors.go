package cp

import "errors"

// ErrInfeasible is returned by Model.Init when the fix-point run at
// construction proves the entire problem has no solution (§6, §7: an
// infeasibility error, not a structural or programmer error — the model is
// well-formed, it simply admits no assignment).
var ErrInfeasible = errors.New("cp: model is infeasible at init")
