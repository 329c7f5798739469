package http

// Signup godoc
// @Summary Register a new user
// @Description Create a new account. New accounts never carry the admin flag.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string,firstname=string,lastname=string} true "User registration data"
// @Success 200 {object} object{success=bool,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /users/signup [post]
func (h *UserHandler) SignupDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate user and get JWT token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{success=bool,token=string,status=string}
// @Failure 401 {object} object{error=string}
// @Router /users/login [post]
func (h *UserHandler) LoginDoc() {}

// Me godoc
// @Summary Current user
// @Description Profile of the authenticated user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /users/me [get]
func (h *UserHandler) MeDoc() {}

// List godoc
// @Summary List users
// @Description Every registered account, oldest first
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /users [get]
func (h *UserHandler) ListDoc() {}
