package v1

var (
	// common errors
	ErrSuccess             = newError(0, "ok")
	ErrBadRequest          = newError(400, "bad request")
	ErrUnauthorized        = newError(401, "unauthorized")
	ErrNotFound            = newError(404, "not found")
	ErrInternalServerError = newError(500, "internal server error")

	// product errors
	ErrSkuAlreadyExists = newError(1001, "product with the same sku already exists")
	ErrProductNotFound  = newError(1002, "product not found")
	ErrConfirmRequired  = newError(1003, "bulk delete requires confirm=true")

	// import errors
	ErrFileNameRequired = newError(2001, "file name is required")
	ErrFileSaveFailed   = newError(2002, "failed to save uploaded file")
	ErrInvalidCSVFormat = newError(2003, "invalid csv format")
	ErrJobNotFound      = newError(2004, "import job not found")
	ErrJobFinished      = newError(2005, "import job already finished")
	ErrEnqueueFailed    = newError(2006, "failed to enqueue import task")

	// webhook errors
	ErrWebhookNotFound = newError(3001, "webhook not found")
	ErrWebhookDisabled = newError(3002, "webhook is disabled, enable it before testing")
)
