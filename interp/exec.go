package interp

import (
	"errors"
	"fmt"

	"github.com/joshuapare/cellvm/lang"
	"github.com/joshuapare/cellvm/registry"
)

// ExecLine parses and executes one line. Blank and comment lines are no-ops.
func (in *Interpreter) ExecLine(line string) error {
	cmd, err := lang.Parse(line)
	if errors.Is(err, lang.ErrEmpty) {
		return nil
	}
	if err != nil {
		return err
	}
	return in.Exec(cmd)
}

// Exec executes one command. Every check a command needs runs before it
// writes to memory or the registry, so a failed command leaves both as they
// were.
func (in *Interpreter) Exec(cmd lang.Command) error {
	if in.closed {
		return ErrClosed
	}

	var err error
	switch cmd.Op {
	case lang.OpMal:
		err = in.mal(cmd.Name, int(cmd.Arg))
	case lang.OpAss:
		err = in.assign(cmd.Name, cmd.Arg)
	case lang.OpInc:
		err = in.step(cmd.Name, int(cmd.Arg), true)
	case lang.OpDec:
		err = in.step(cmd.Name, int(cmd.Arg), false)
	case lang.OpPri:
		err = in.print(cmd.Name, int(cmd.Arg))
	case lang.OpAdd, lang.OpSub, lang.OpMul:
		err = in.arith(cmd.Op, cmd.Name, cmd.Other)
	case lang.OpAnd, lang.OpXor:
		err = in.logic(cmd.Op, cmd.Name, cmd.Other)
	case lang.OpFre:
		err = in.free(cmd.Name)
	case lang.OpPra:
		err = in.printArray(cmd.Name)
	default:
		err = fmt.Errorf("%w: %s", lang.ErrUnknownOp, cmd.Op)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	in.log.Debug("exec", "cmd", cmd.String())
	return nil
}

func (in *Interpreter) mal(name string, n int) error {
	if _, err := in.vars.Lookup(name); err == nil {
		return fmt.Errorf("%w: %s", registry.ErrExists, name)
	}
	start, err := in.mem.Allocate(n)
	if err != nil {
		return err
	}
	if err := in.vars.Create(name, registry.Block{Start: start, Len: n}); err != nil {
		if ferr := in.mem.Free(start, n); ferr != nil {
			return errors.Join(err, ferr)
		}
		return err
	}
	return nil
}

func (in *Interpreter) assign(name string, v int32) error {
	addr, err := in.vars.Resolve(name, 0)
	if err != nil {
		return err
	}
	return in.mem.Write(addr, v)
}

func (in *Interpreter) step(name string, index int, up bool) error {
	addr, err := in.vars.Resolve(name, index)
	if err != nil {
		return err
	}
	if up {
		_, err = in.mem.Increment(addr)
	} else {
		_, err = in.mem.Decrement(addr)
	}
	return err
}

func (in *Interpreter) print(name string, index int) error {
	v, err := in.read(name, index)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(in.out, "%d\n", v)
	return err
}

func (in *Interpreter) read(name string, index int) (int32, error) {
	addr, err := in.vars.Resolve(name, index)
	if err != nil {
		return 0, err
	}
	return in.mem.Read(addr)
}

// arith applies Add, Sub or Mul to the first cells of dst and src, storing
// into dst[0]. Results wrap at 32 bits.
func (in *Interpreter) arith(op lang.Op, dst, src string) error {
	a, err := in.read(dst, 0)
	if err != nil {
		return err
	}
	b, err := in.read(src, 0)
	if err != nil {
		return err
	}

	var r int32
	switch op {
	case lang.OpAdd:
		r = a + b
	case lang.OpSub:
		r = a - b
	default:
		r = a * b
	}

	addr, _ := in.vars.Resolve(dst, 0)
	return in.mem.Write(addr, r)
}

// logic applies And or Xor cell by cell, storing 0 or 1 into dst.
func (in *Interpreter) logic(op lang.Op, dst, src string) error {
	bd, err := in.vars.Lookup(dst)
	if err != nil {
		return err
	}
	bs, err := in.vars.Lookup(src)
	if err != nil {
		return err
	}
	if bd.Len != bs.Len {
		return fmt.Errorf("%w: %s has %d, %s has %d", ErrLengthMismatch, dst, bd.Len, src, bs.Len)
	}

	a, err := in.values(bd)
	if err != nil {
		return err
	}
	b, err := in.values(bs)
	if err != nil {
		return err
	}

	for i := range a {
		var bit int32
		if op == lang.OpAnd {
			bit = a[i] & b[i] & 1
		} else {
			bit = (a[i] ^ b[i]) & 1
		}
		if err := in.mem.Write(bd.Start+i, bit); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) values(b registry.Block) ([]int32, error) {
	vals := make([]int32, b.Len)
	for i := range vals {
		v, err := in.mem.Read(b.Start + i)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (in *Interpreter) free(name string) error {
	b, err := in.vars.Lookup(name)
	if err != nil {
		return err
	}
	if err := in.mem.Free(b.Start, b.Len); err != nil {
		return err
	}
	_, err = in.vars.Delete(name)
	return err
}

func (in *Interpreter) printArray(name string) error {
	b, err := in.vars.Lookup(name)
	if err != nil {
		return err
	}
	vals, err := in.values(b)
	if err != nil {
		return err
	}

	buf := make([]byte, 0, 4+12*len(vals))
	buf = append(buf, "[ "...)
	for _, v := range vals {
		buf = fmt.Appendf(buf, "%d ", v)
	}
	buf = append(buf, "]\n"...)
	_, err = in.out.Write(buf)
	return err
}
