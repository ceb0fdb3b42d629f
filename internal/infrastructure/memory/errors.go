package memory

import "errors"

// errCheckViolation imita la violación de CHECK (quantity >= 0) de PostgreSQL.
var errCheckViolation = errors.New("memory: check constraint products_quantity_check")

// errForeignKey imita la violación de FK hacia products.
var errForeignKey = errors.New("memory: foreign key violation (product_id)")
