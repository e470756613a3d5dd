package payments

import "errors"

// ErrNoInitPoint: the collaborator answered 200 but without a redirect
// target, so there is nothing to send the customer to.
var ErrNoInitPoint = errors.New("payment API returned no init_point")
