// Package validate checks incoming JSON request bodies against schemas embedded
// in the binary under schemas/.
//
// Usage:
//
//	v := validate.MustNew()
//	var req SettleRequest
//	if err := v.Bind(validate.SettleRequest, c.Body(), &req); err != nil {
//	    // errors.Is(err, validate.ErrInvalid) -> 400
//	}
package validate
