package defrag

// DOS-era file names shown while a file is being moved.
var (
	msDOSFiles = []string{
		"IO.SYS", "MSDOS.SYS", "COMMAND.COM", "AUTOEXEC.BAT", "CONFIG.SYS",
		"EDIT.COM", "QBASIC.EXE", "FDISK.EXE", "FORMAT.COM", "CHKDSK.EXE",
		"MEM.EXE", "ATTRIB.EXE", "DEFRAG.EXE", "SCANDISK.EXE", "HIMEM.SYS",
		"EMM386.EXE", "SMARTDRV.EXE", "MOUSE.COM", "DOSSHELL.EXE", "XCOPY.EXE",
	}
	windows311Files = []string{
		`WINDOWS\WIN.COM`, `WINDOWS\SYSTEM.INI`, `WINDOWS\WIN.INI`,
		`WINDOWS\SYSTEM\GDI.EXE`, `WINDOWS\SYSTEM\USER.EXE`, `WINDOWS\SYSTEM\KRNL386.EXE`,
		`WINDOWS\PROGMAN.EXE`, `WINDOWS\SOL.EXE`, `WINDOWS\WINMINE.EXE`, `WINDOWS\CLOCK.EXE`,
		`WINDOWS\SYSTEM\VGA.DRV`, `WINDOWS\SYSTEM\COMM.DRV`, `WINDOWS\SYSTEM\MMSOUND.DRV`,
		`WINDOWS\WRITE.EXE`, `WINDOWS\NOTEPAD.EXE`, `WINDOWS\REGEDIT.EXE`,
	}
	dBaseFiles = []string{
		`DBASE\DBASE.EXE`, `DBASE\DBASE.RES`, `DBASE\SQLHOME\SQL.EXE`,
		`DBASE\SAMPLES\CLIENTS.DBF`, `DBASE\SAMPLES\ORDERS.DBF`, `DBASE\SAMPLES\ITEMS.NDX`,
		`DBASE\TUTORIAL\TUTOR.DBF`,
	}
	gameFiles = []string{
		`DOOM\DOOM.EXE`, `DOOM\DOOM.WAD`, `DOOM\SETUP.EXE`,
		`DUKE3D\DUKE3D.EXE`, `DUKE3D\DUKE.RTS`,
		`CIV\CIV.EXE`, `CIV\MAP.GIF`,
	}
)

// FileNames returns the full catalogue of simulated file names.
func FileNames() []string {
	out := make([]string, 0, len(msDOSFiles)+len(windows311Files)+len(dBaseFiles)+len(gameFiles))
	out = append(out, msDOSFiles...)
	out = append(out, windows311Files...)
	out = append(out, dBaseFiles...)
	return append(out, gameFiles...)
}

func pickName(names []string, r Rand) string {
	if len(names) == 0 {
		return ""
	}
	return names[r.IntN(len(names))]
}
