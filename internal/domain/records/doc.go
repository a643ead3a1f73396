// Package records reúne la semántica común a todos los backends de RecordRepository:
// coincidencia de búsqueda, filtro por campo, rango de fechas y mezcla de parches.
package records
