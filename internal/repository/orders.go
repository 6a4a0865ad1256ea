package repository

// Listing order is a closed enumeration: each key maps to a fixed ORDER BY
// clause. Unknown keys are rejected at validation time and nothing here ever
// evaluates caller-supplied expressions.

var postOrders = map[string]string{
	"ADD_TIME_INC": "created_at ASC",
	"VIEW_NUM_INC": "view_num ASC",
	"LIKE_NUM_INC": "like_num ASC",
	"ADD_TIME_DEC": "created_at DESC",
	"VIEW_NUM_DEC": "view_num DESC",
	"LIKE_NUM_DEC": "like_num DESC",
}

var commentOrders = map[string]string{
	"ADD_TIME_INC": "created_at ASC",
	"LIKE_NUM_INC": "like_num ASC",
	"ADD_TIME_DEC": "created_at DESC",
	"LIKE_NUM_DEC": "like_num DESC",
}

// ValidPostOrder reports whether key names a supported post ordering.
func ValidPostOrder(key string) bool {
	_, ok := postOrders[key]
	return ok
}

// ValidCommentOrder reports whether key names a supported comment ordering.
func ValidCommentOrder(key string) bool {
	_, ok := commentOrders[key]
	return ok
}
