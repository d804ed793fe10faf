// Package fuzztests houses Go fuzz harnesses for the buffer and the edit
// script parser. They guard against panics, broken invariants and
// disagreement with the reference model in internal/testkit.
//
// Назначение: прогонять произвольные байты через Load/Overwrite и
// произвольные последовательности правок через буфер и эталонную модель.
//
// Не делает: генерацию корпусов, выполнение CLI.
//
// Зависимости: internal/buffer, internal/script, internal/testkit.
package fuzztests
