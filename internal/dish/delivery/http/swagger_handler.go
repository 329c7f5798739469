package http

// ListDishes godoc
// @Summary List dishes
// @Tags Dishes
// @Produce json
// @Param featured query bool false "Only featured dishes"
// @Success 200 {array} object{_id=string,name=string,description=string,image=string,category=string,label=string,price=number,featured=bool}
// @Router /dishes [get]
func (h *DishHandler) ListDishesDoc() {}

// GetDish godoc
// @Summary Get dish by ID
// @Tags Dishes
// @Produce json
// @Param dishId path string true "Dish ID"
// @Success 200 {object} object{_id=string,name=string,price=number}
// @Failure 404 {object} object{error=string}
// @Router /dishes/{dishId} [get]
func (h *DishHandler) GetDishDoc() {}

// CreateDish godoc
// @Summary Create dish (admin)
// @Tags Dishes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,image=string,category=string,label=string,price=number,featured=bool} true "Dish data"
// @Success 200 {object} object{_id=string,name=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /dishes [post]
func (h *DishHandler) CreateDishDoc() {}
